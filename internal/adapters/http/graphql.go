package http

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// from adapts a typed accessor into a field resolver.
func from[T any](get func(T) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		src, ok := p.Source.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected source %T", p.Source)
		}
		return get(src), nil
	}
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	tripType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trip",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: from(func(t *domain.Trip) interface{} { return gqlID(t.ID) })},
			"user_id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: from(func(t *domain.Trip) interface{} { return gqlID(t.UserID) })},
			"title":        &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(t *domain.Trip) interface{} { return t.Title })},
			"start_date":   &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(t *domain.Trip) interface{} { return t.StartDate.String() })},
			"end_date":     &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(t *domain.Trip) interface{} { return t.EndDate.String() })},
			"total_budget": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(t *domain.Trip) interface{} { return t.TotalBudget.String() })},
			"is_public":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean), Resolve: from(func(t *domain.Trip) interface{} { return t.IsPublic })},
		},
	})

	activityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Activity",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: from(func(a domain.Activity) interface{} { return gqlID(a.ID) })},
			"day_id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: from(func(a domain.Activity) interface{} { return gqlID(a.DayID) })},
			"activity_name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(a domain.Activity) interface{} { return a.ActivityName })},
			"activity_time": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(a domain.Activity) interface{} { return a.ActivityTime.String() })},
			"cost":          &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(a domain.Activity) interface{} { return a.Cost.String() })},
		},
	})

	dayType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ItineraryDay",
		Fields: graphql.Fields{
			"date":       &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(d domain.DayItinerary) interface{} { return d.Date.String() })},
			"activities": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(activityType)), Resolve: from(func(d domain.DayItinerary) interface{} { return d.Activities })},
		},
	})

	cityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ItineraryCity",
		Fields: graphql.Fields{
			"city": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(c domain.CityItinerary) interface{} { return c.City })},
			"days": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(dayType)), Resolve: from(func(c domain.CityItinerary) interface{} { return c.Days })},
		},
	})

	tripInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TripInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"user_id":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"title":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"start_date":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"end_date":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"total_budget": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"is_public":    &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"trip": &graphql.Field{
				Type: tripType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					trip, err := deps.Trips.GetByID(p.Context, id)
					if errors.Is(err, domain.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, gqlError(p, err)
					}
					return trip, nil
				},
			},
			"itinerary": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(cityType)),
				Args: graphql.FieldConfigArgument{
					"trip_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p.Args, "trip_id")
					if err != nil {
						return nil, err
					}
					itinerary, err := deps.Itineraries.Build(p.Context, id)
					if err != nil {
						return nil, gqlError(p, err)
					}
					return itinerary, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTrip": &graphql.Field{
				Type: tripType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(tripInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					args, _ := p.Args["input"].(map[string]interface{})
					in, err := newTripFromArgs(args)
					if err != nil {
						return nil, err
					}
					trip, err := deps.Trips.Create(p.Context, in)
					if err != nil {
						return nil, gqlError(p, err)
					}
					return trip, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// gqlID renders a BIGSERIAL id as a GraphQL ID; graphql.Int is 32-bit.
func gqlID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func argID(args map[string]interface{}, name string) (int64, error) {
	s, _ := args[name].(string)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "int", name+" must be an integer")
	}
	return id, nil
}

// gqlError keeps validation messages and hides everything else.
func gqlError(p graphql.ResolveParams, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	slog.ErrorContext(p.Context, "graphql resolver failed", "field", p.Info.FieldName, "error", err)
	return errors.New("internal server error")
}

// newTripFromArgs converts createTrip input into the REST payload type so
// both surfaces share one validation path.
func newTripFromArgs(args map[string]interface{}) (domain.NewTrip, error) {
	var in domain.NewTrip

	if _, ok := args["user_id"]; ok {
		uid, err := argID(args, "user_id")
		if err != nil {
			return in, err
		}
		in.UserID = &uid
	}
	in.Title, _ = args["title"].(string)

	var err error
	if s, _ := args["start_date"].(string); s != "" {
		if in.StartDate, err = domain.ParseDate(s); err != nil {
			return in, domain.NewValidationError("start_date", "date", err.Error())
		}
	}
	if s, _ := args["end_date"].(string); s != "" {
		if in.EndDate, err = domain.ParseDate(s); err != nil {
			return in, domain.NewValidationError("end_date", "date", err.Error())
		}
	}
	if s, _ := args["total_budget"].(string); s != "" {
		budget, err := domain.ParseMoney(s)
		if err != nil {
			return in, domain.NewValidationError("total_budget", "money", err.Error())
		}
		in.TotalBudget = &budget
	}
	if b, ok := args["is_public"].(bool); ok {
		in.IsPublic = &b
	}
	return in, nil
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := decodeJSON(c.Body(), &req); err != nil {
			return bodyError(c, err)
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
