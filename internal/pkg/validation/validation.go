// Package validation checks request payloads against their struct tags and
// converts failures into domain.ValidationError values with one violation per field.
package validation

import (
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// moneyScale is the number of fraction digits every stored amount has.
const moneyScale = 2

var (
	validate   = newValidator()
	translator ut.Translator
)

func init() {
	locale := en.New()
	translator, _ = ut.New(locale, locale).GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		slog.Warn("could not register validation translations", "error", err)
	}

	err := validate.RegisterTranslation("money", translator, func(ut ut.Translator) error {
		return ut.Add("money", "{0} must be a decimal amount with at most {1} digits, 2 of them after the point", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("money", fe.Field(), fe.Param())
		return t
	})
	if err != nil {
		slog.Warn("could not register translation for money", "error", err)
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	v.RegisterCustomTypeFunc(dateValuer, domain.Date{})
	v.RegisterCustomTypeFunc(moneyValuer, domain.Money{})
	if err := v.RegisterValidation("money", money); err != nil {
		panic(err)
	}
	return v
}

// Struct validates s and returns a *domain.ValidationError describing every
// violation, or nil when s is valid.
func Struct(s any) error {
	return StructAt("", s)
}

// StructAt is Struct with every reported field prefixed by path,
// e.g. "cities[2]".
func StructAt(path string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &domain.ValidationError{Violations: make([]domain.Violation, 0, len(ve))}
	for _, fe := range ve {
		out.Violations = append(out.Violations, domain.Violation{
			Field:   fieldPath(path, fe.Namespace()),
			Rule:    fe.Tag(),
			Message: fe.Translate(translator),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace
// ("NewTrip.title" -> "title") and prepends path.
func fieldPath(path, namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if path == "" {
		return namespace
	}
	return path + "." + namespace
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func dateValuer(field reflect.Value) interface{} {
	if d, ok := field.Interface().(domain.Date); ok {
		return d.String()
	}
	return nil
}

func moneyValuer(field reflect.Value) interface{} {
	if m, ok := field.Interface().(domain.Money); ok {
		if !m.InRange() {
			return "out of range"
		}
		return m.Decimal.String()
	}
	return nil
}

// money checks that a decimal fits NUMERIC(p, 2) where p is the tag parameter.
func money(fl validator.FieldLevel) bool {
	precision, err := strconv.Atoi(fl.Param())
	if err != nil || precision <= moneyScale {
		return false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return domain.Money{Decimal: d}.Fits(int32(precision), moneyScale)
}
