package upstream

import (
	"context"
	"net/http"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/eventapi"
)

// resilientClient prefers the real backend but serves mocked data when
// mock mode is on or the backend is unreachable. Upstream rejections
// (4xx) are real answers and are passed through.
type resilientClient struct {
	real     Client
	mocked   Client
	settings *Settings
	logger   mylog.Logger
}

func NewResilientClient(real Client, mocked Client, settings *Settings) Client {
	return &resilientClient{
		real:     real,
		mocked:   mocked,
		settings: settings,
		logger:   mylog.New("upstream"),
	}
}

func (cl resilientClient) shouldFallback(c context.Context, operation string, err error) bool {
	if err == nil {
		return false
	}
	if myerrors.GetHTTPStatus(err) != http.StatusServiceUnavailable {
		return false
	}

	cl.logger.Log(c, "", mylog.SeverityWarn, "Backend unreachable on %s, serving mocked data: %s", operation, err)

	return true
}

func (cl resilientClient) GetEvents(c context.Context, filter EventFilter) (eventapi.ExperiencePage, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.GetEvents(c, filter)
	}
	page, err := cl.real.GetEvents(c, filter)
	if cl.shouldFallback(c, "GetEvents", err) {
		return cl.mocked.GetEvents(c, filter)
	}

	return page, err
}

func (cl resilientClient) GetEventByID(c context.Context, eventUID string) (eventapi.Experience, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.GetEventByID(c, eventUID)
	}
	event, err := cl.real.GetEventByID(c, eventUID)
	if cl.shouldFallback(c, "GetEventByID", err) {
		return cl.mocked.GetEventByID(c, eventUID)
	}

	return event, err
}

func (cl resilientClient) GetEventAvailability(c context.Context, eventUID string) (eventapi.Availability, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.GetEventAvailability(c, eventUID)
	}
	availability, err := cl.real.GetEventAvailability(c, eventUID)
	if cl.shouldFallback(c, "GetEventAvailability", err) {
		return cl.mocked.GetEventAvailability(c, eventUID)
	}

	return availability, err
}

func (cl resilientClient) GetEventTimeSlots(c context.Context, eventUID string, date string) (eventapi.TimeSlots, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.GetEventTimeSlots(c, eventUID, date)
	}
	slots, err := cl.real.GetEventTimeSlots(c, eventUID, date)
	if cl.shouldFallback(c, "GetEventTimeSlots", err) {
		return cl.mocked.GetEventTimeSlots(c, eventUID, date)
	}

	return slots, err
}

func (cl resilientClient) CreateBooking(c context.Context, req eventapi.BookingRequest) (eventapi.BookingCreated, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.CreateBooking(c, req)
	}
	created, err := cl.real.CreateBooking(c, req)
	if cl.shouldFallback(c, "CreateBooking", err) {
		return cl.mocked.CreateBooking(c, req)
	}

	return created, err
}

func (cl resilientClient) GetUserBookings(c context.Context, userUID string) (eventapi.BookingList, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.GetUserBookings(c, userUID)
	}
	bookings, err := cl.real.GetUserBookings(c, userUID)
	if cl.shouldFallback(c, "GetUserBookings", err) {
		return cl.mocked.GetUserBookings(c, userUID)
	}

	return bookings, err
}

func (cl resilientClient) CancelBooking(c context.Context, bookingUID string) error {
	if cl.settings.UseMocks() {
		return cl.mocked.CancelBooking(c, bookingUID)
	}
	err := cl.real.CancelBooking(c, bookingUID)
	if cl.shouldFallback(c, "CancelBooking", err) {
		return cl.mocked.CancelBooking(c, bookingUID)
	}

	return err
}

func (cl resilientClient) GetUserProfile(c context.Context, userUID string) (eventapi.UserProfile, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.GetUserProfile(c, userUID)
	}
	profile, err := cl.real.GetUserProfile(c, userUID)
	if cl.shouldFallback(c, "GetUserProfile", err) {
		return cl.mocked.GetUserProfile(c, userUID)
	}

	return profile, err
}

func (cl resilientClient) UpdateUserProfile(c context.Context, userUID string, profile eventapi.UserProfile) (eventapi.UserProfile, error) {
	if cl.settings.UseMocks() {
		return cl.mocked.UpdateUserProfile(c, userUID, profile)
	}
	updated, err := cl.real.UpdateUserProfile(c, userUID, profile)
	if cl.shouldFallback(c, "UpdateUserProfile", err) {
		return cl.mocked.UpdateUserProfile(c, userUID, profile)
	}

	return updated, err
}

func (cl resilientClient) TrackEvent(c context.Context, event eventapi.AnalyticsEvent) error {
	if cl.settings.UseMocks() {
		return cl.mocked.TrackEvent(c, event)
	}
	err := cl.real.TrackEvent(c, event)
	if cl.shouldFallback(c, "TrackEvent", err) {
		return cl.mocked.TrackEvent(c, event)
	}

	return err
}
