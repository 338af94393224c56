package domain

// Trip is the root of a travel plan owned by a user.
type Trip struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	StartDate   Date   `json:"start_date"`
	EndDate     Date   `json:"end_date"`
	TotalBudget Money  `json:"total_budget"`
	IsPublic    bool   `json:"is_public"`
}

// NewTrip is the payload accepted when creating a trip.
// Pointer fields distinguish "missing" from a zero value.
type NewTrip struct {
	UserID      *int64 `json:"user_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=150"`
	StartDate   Date   `json:"start_date" validate:"required"`
	EndDate     Date   `json:"end_date" validate:"required"`
	TotalBudget *Money `json:"total_budget" validate:"required,money=10"`
	IsPublic    *bool  `json:"is_public"`
}

// Trip builds the entity to persist. The identifier is assigned by the store.
func (n NewTrip) Trip() *Trip {
	t := &Trip{
		Title:     n.Title,
		StartDate: n.StartDate,
		EndDate:   n.EndDate,
	}
	if n.UserID != nil {
		t.UserID = *n.UserID
	}
	if n.TotalBudget != nil {
		t.TotalBudget = *n.TotalBudget
	}
	if n.IsPublic != nil {
		t.IsPublic = *n.IsPublic
	}
	return t
}

// City is a stop within a trip.
type City struct {
	ID            int64  `json:"id"`
	TripID        int64  `json:"trip_id"`
	CityName      string `json:"city_name"`
	ArrivalDate   Date   `json:"arrival_date"`
	DepartureDate Date   `json:"departure_date"`
}

// Day is a single calendar date spent in a city.
type Day struct {
	ID         int64 `json:"id"`
	CityID     int64 `json:"city_id"`
	TravelDate Date  `json:"travel_date"`
}

// Activity is a scheduled, costed event within a day.
type Activity struct {
	ID           int64     `json:"id"`
	DayID        int64     `json:"day_id"`
	ActivityName string    `json:"activity_name"`
	ActivityTime TimeOfDay `json:"activity_time"`
	Cost         Money     `json:"cost"`
}

// CityItinerary is one element of the nested itinerary response.
type CityItinerary struct {
	City string         `json:"city"`
	Days []DayItinerary `json:"days"`
}

// DayItinerary lists the activities of one day, in store order.
type DayItinerary struct {
	Date       Date       `json:"date"`
	Activities []Activity `json:"activities"`
}

// CityPlan describes a city, its days and their activities for an import.
type CityPlan struct {
	Name          string    `json:"name" validate:"required,max=100"`
	ArrivalDate   Date      `json:"arrival_date" validate:"required"`
	DepartureDate Date      `json:"departure_date" validate:"required"`
	Days          []DayPlan `json:"days" validate:"dive"`
}

// DayPlan is a day inside a CityPlan.
type DayPlan struct {
	Date       Date           `json:"date" validate:"required"`
	Activities []ActivityPlan `json:"activities" validate:"dive"`
}

// ActivityPlan is an activity inside a DayPlan.
type ActivityPlan struct {
	Name string    `json:"name" validate:"required,max=150"`
	Time TimeOfDay `json:"time"`
	Cost Money     `json:"cost" validate:"money=8"`
}

// ImportSummary reports how many rows an import created.
type ImportSummary struct {
	TripID     int64 `json:"trip_id"`
	Cities     int   `json:"cities"`
	Days       int   `json:"days"`
	Activities int   `json:"activities"`
}
