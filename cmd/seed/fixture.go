package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// fixture is the YAML layout read by the seed command. Dates, times and
// amounts stay strings here and are parsed with the domain parsers, so the
// file accepts exactly what the API accepts.
type fixture struct {
	Trips []tripFixture `yaml:"trips"`
}

type tripFixture struct {
	UserID      int64         `yaml:"user_id"`
	Title       string        `yaml:"title"`
	StartDate   string        `yaml:"start_date"`
	EndDate     string        `yaml:"end_date"`
	TotalBudget string        `yaml:"total_budget"`
	IsPublic    bool          `yaml:"is_public"`
	Cities      []cityFixture `yaml:"cities"`
}

type cityFixture struct {
	Name          string       `yaml:"name"`
	ArrivalDate   string       `yaml:"arrival_date"`
	DepartureDate string       `yaml:"departure_date"`
	Days          []dayFixture `yaml:"days"`
}

type dayFixture struct {
	Date       string            `yaml:"date"`
	Activities []activityFixture `yaml:"activities"`
}

type activityFixture struct {
	Name string `yaml:"name"`
	Time string `yaml:"time"`
	Cost string `yaml:"cost"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// newTrip converts the trip header into the creation payload.
func (t tripFixture) newTrip() (domain.NewTrip, error) {
	start, err := domain.ParseDate(t.StartDate)
	if err != nil {
		return domain.NewTrip{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := domain.ParseDate(t.EndDate)
	if err != nil {
		return domain.NewTrip{}, fmt.Errorf("end_date: %w", err)
	}
	budget, err := domain.ParseMoney(t.TotalBudget)
	if err != nil {
		return domain.NewTrip{}, fmt.Errorf("total_budget: %w", err)
	}

	userID, public := t.UserID, t.IsPublic
	return domain.NewTrip{
		UserID:      &userID,
		Title:       t.Title,
		StartDate:   start,
		EndDate:     end,
		TotalBudget: &budget,
		IsPublic:    &public,
	}, nil
}

// plan converts the nested cities into import plans.
func (t tripFixture) plan() ([]domain.CityPlan, error) {
	plans := make([]domain.CityPlan, 0, len(t.Cities))
	for i, c := range t.Cities {
		arrival, err := domain.ParseDate(c.ArrivalDate)
		if err != nil {
			return nil, fmt.Errorf("cities[%d].arrival_date: %w", i, err)
		}
		departure, err := domain.ParseDate(c.DepartureDate)
		if err != nil {
			return nil, fmt.Errorf("cities[%d].departure_date: %w", i, err)
		}

		cp := domain.CityPlan{Name: c.Name, ArrivalDate: arrival, DepartureDate: departure}
		for j, d := range c.Days {
			date, err := domain.ParseDate(d.Date)
			if err != nil {
				return nil, fmt.Errorf("cities[%d].days[%d].date: %w", i, j, err)
			}

			dp := domain.DayPlan{Date: date}
			for k, a := range d.Activities {
				at, err := domain.ParseTimeOfDay(a.Time)
				if err != nil {
					return nil, fmt.Errorf("cities[%d].days[%d].activities[%d].time: %w", i, j, k, err)
				}
				cost := domain.Money{}
				if a.Cost != "" {
					if cost, err = domain.ParseMoney(a.Cost); err != nil {
						return nil, fmt.Errorf("cities[%d].days[%d].activities[%d].cost: %w", i, j, k, err)
					}
				}
				dp.Activities = append(dp.Activities, domain.ActivityPlan{Name: a.Name, Time: at, Cost: cost})
			}
			cp.Days = append(cp.Days, dp)
		}
		plans = append(plans, cp)
	}
	return plans, nil
}
