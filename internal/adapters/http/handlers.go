package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// RootHandler reports that the API is up.
func RootHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Backend is running"})
	}
}

// CreateTripHandler stores a trip from a JSON body and returns it with its id.
func CreateTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.NewTrip
		if err := decodeJSON(c.Body(), &in); err != nil {
			return bodyError(c, err)
		}

		trip, err := deps.Trips.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}

		c.Location("/trips/" + strconv.FormatInt(trip.ID, 10))
		return c.Status(fiber.StatusCreated).JSON(trip)
	}
}

// GetTripHandler returns a single trip by id.
func GetTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		trip, err := deps.Trips.GetByID(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(trip)
	}
}

// ItineraryHandler returns the nested city/day/activity view of a trip.
// Unknown trips yield an empty array.
func ItineraryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "trip_id")
		if err != nil {
			return respondError(c, err)
		}

		itinerary, err := deps.Itineraries.Build(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(itinerary)
	}
}

// pathID parses an integer route parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "int", name+" must be an integer")
	}
	return id, nil
}

// decodeJSON decodes a JSON object into the struct v points to, one member
// at a time, so a member that does not decode is reported against its field
// as a *domain.ValidationError. Syntax errors and bodies that are not an
// object come back as plain errors.
func decodeJSON(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("request body is empty")
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return errors.New("request body must be a JSON object")
		}
		return errors.New("malformed JSON body: " + err.Error())
	}

	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	verr := &domain.ValidationError{}
	for i := 0; i < rt.NumField(); i++ {
		name := strings.SplitN(rt.Field(i).Tag.Get("json"), ",", 2)[0]
		raw, ok := members[name]
		if !ok || name == "" || name == "-" {
			continue
		}
		field := rv.Field(i)
		if err := json.Unmarshal(raw, field.Addr().Interface()); err != nil {
			verr.Violations = append(verr.Violations, decodeViolation(name, field.Type(), err))
		}
	}

	if len(verr.Violations) > 0 {
		return verr
	}
	return nil
}

var (
	dateType  = reflect.TypeOf(domain.Date{})
	timeType  = reflect.TypeOf(domain.TimeOfDay(0))
	moneyType = reflect.TypeOf(domain.Money{})
)

// decodeViolation names the rule a member broke by the type it decodes into.
func decodeViolation(name string, t reflect.Type, err error) domain.Violation {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case dateType:
		return domain.Violation{Field: name, Rule: "date", Message: name + ": " + err.Error()}
	case timeType:
		return domain.Violation{Field: name, Rule: "time", Message: name + ": " + err.Error()}
	case moneyType:
		return domain.Violation{Field: name, Rule: "money", Message: name + ": " + err.Error()}
	}

	message := name + " has the wrong type"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		message = fmt.Sprintf("%s must be of type %s, got %s", name, typeErr.Type, typeErr.Value)
	}
	return domain.Violation{Field: name, Rule: "type", Message: message}
}

// bodyError answers a decodeJSON failure: 422 for field violations, 400 otherwise.
func bodyError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errValidation(c, ve)
	}
	return errBadRequest(c, err.Error())
}
