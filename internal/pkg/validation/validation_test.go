package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/pkg/validation"
)

func violations(t *testing.T, err error) []domain.Violation {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Violations
}

func TestStruct_Valid(t *testing.T) {
	uid := int64(1)
	budget := domain.MustMoney("0")
	err := validation.Struct(domain.NewTrip{
		UserID: &uid, Title: "t",
		StartDate: domain.NewDate(2025, 1, 1), EndDate: domain.NewDate(2025, 1, 2),
		TotalBudget: &budget,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	vs := violations(t, validation.Struct(domain.NewTrip{Title: strings.Repeat("x", 200)}))

	byField := map[string]domain.Violation{}
	for _, v := range vs {
		byField[v.Field] = v
	}
	if v, ok := byField["title"]; !ok || v.Rule != "max" || !strings.Contains(v.Message, "150") {
		t.Errorf("unexpected title violation %+v", v)
	}
	for _, f := range []string{"user_id", "start_date", "end_date", "total_budget"} {
		if byField[f].Rule != "required" {
			t.Errorf("expected required on %s, got %+v", f, byField[f])
		}
	}
}

func TestStruct_MoneyMessage(t *testing.T) {
	uid := int64(1)
	budget := domain.MustMoney("12.345")
	vs := violations(t, validation.Struct(domain.NewTrip{
		UserID: &uid, Title: "t",
		StartDate: domain.NewDate(2025, 1, 1), EndDate: domain.NewDate(2025, 1, 2),
		TotalBudget: &budget,
	}))
	if len(vs) != 1 || vs[0].Rule != "money" || !strings.Contains(vs[0].Message, "total_budget") {
		t.Errorf("unexpected violations %+v", vs)
	}
}

func TestStructAt_PrefixesNestedPaths(t *testing.T) {
	plan := domain.CityPlan{
		Name:          "Rome",
		ArrivalDate:   domain.NewDate(2025, 1, 1),
		DepartureDate: domain.NewDate(2025, 1, 2),
		Days: []domain.DayPlan{{
			Date:       domain.NewDate(2025, 1, 1),
			Activities: []domain.ActivityPlan{{Name: ""}},
		}},
	}
	vs := violations(t, validation.StructAt("cities[3]", plan))
	if len(vs) != 1 || vs[0].Field != "cities[3].days[0].activities[0].name" {
		t.Errorf("unexpected violations %+v", vs)
	}
}

func TestStruct_HugeMoneyFailsFast(t *testing.T) {
	uid := int64(1)
	budget := domain.Money{Decimal: decimal.New(1, 400000000)}
	vs := violations(t, validation.Struct(domain.NewTrip{
		UserID: &uid, Title: "t",
		StartDate: domain.NewDate(2025, 1, 1), EndDate: domain.NewDate(2025, 1, 2),
		TotalBudget: &budget,
	}))
	if len(vs) != 1 || vs[0].Field != "total_budget" || vs[0].Rule != "money" {
		t.Errorf("unexpected violations %+v", vs)
	}
}
