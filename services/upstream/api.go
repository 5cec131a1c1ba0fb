package upstream

import (
	"context"

	"github.com/artaltay/miniapp/services/eventapi"
)

// EventFilter narrows down the catalog list the way the upstream
// /events endpoint accepts it.
type EventFilter struct {
	Search   string
	Tags     []string
	MinPrice int
	MaxPrice int
	Page     int
	PageSize int
}

//go:generate mockgen -source=api.go -package upstream -destination client_mock.go Client
type Client interface {
	GetEvents(c context.Context, filter EventFilter) (eventapi.ExperiencePage, error)
	GetEventByID(c context.Context, eventUID string) (eventapi.Experience, error)
	GetEventAvailability(c context.Context, eventUID string) (eventapi.Availability, error)
	GetEventTimeSlots(c context.Context, eventUID string, date string) (eventapi.TimeSlots, error)
	CreateBooking(c context.Context, req eventapi.BookingRequest) (eventapi.BookingCreated, error)
	GetUserBookings(c context.Context, userUID string) (eventapi.BookingList, error)
	CancelBooking(c context.Context, bookingUID string) error
	GetUserProfile(c context.Context, userUID string) (eventapi.UserProfile, error)
	UpdateUserProfile(c context.Context, userUID string, profile eventapi.UserProfile) (eventapi.UserProfile, error)
	TrackEvent(c context.Context, event eventapi.AnalyticsEvent) error
}
