package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/myhttpclient"
	"github.com/artaltay/miniapp/services/eventapi"
)

type httpClient struct {
	sender   myhttpclient.HTTPSender
	settings *Settings
}

// NewHTTPClient talks to the real Art Altay API over the given sender.
func NewHTTPClient(sender myhttpclient.HTTPSender, settings *Settings) Client {
	return &httpClient{
		sender:   sender,
		settings: settings,
	}
}

func (cl httpClient) GetEvents(c context.Context, filter EventFilter) (eventapi.ExperiencePage, error) {
	page := eventapi.ExperiencePage{}
	err := cl.getJSON(c, "/events"+encodeFilter(filter), &page)
	if err != nil {
		return eventapi.ExperiencePage{}, err
	}

	return page, nil
}

func (cl httpClient) GetEventByID(c context.Context, eventUID string) (eventapi.Experience, error) {
	event := eventapi.Experience{}
	err := cl.getJSON(c, fmt.Sprintf("/events/%s", eventUID), &event)
	if err != nil {
		return eventapi.Experience{}, err
	}

	return event, nil
}

func (cl httpClient) GetEventAvailability(c context.Context, eventUID string) (eventapi.Availability, error) {
	availability := eventapi.Availability{}
	err := cl.getJSON(c, fmt.Sprintf("/events/%s/availability", eventUID), &availability)
	if err != nil {
		return eventapi.Availability{}, err
	}

	return availability, nil
}

func (cl httpClient) GetEventTimeSlots(c context.Context, eventUID string, date string) (eventapi.TimeSlots, error) {
	slots := eventapi.TimeSlots{}
	path := fmt.Sprintf("/events/%s/time-slots?date=%s", eventUID, url.QueryEscape(date))
	err := cl.getJSON(c, path, &slots)
	if err != nil {
		return eventapi.TimeSlots{}, err
	}

	return slots, nil
}

// bookingEnvelope is the wire shape of POST /bookings.
type bookingEnvelope struct {
	Success bool                    `json:"success"`
	Data    eventapi.BookingCreated `json:"data"`
	Message string                  `json:"message,omitempty"`
}

func (cl httpClient) CreateBooking(c context.Context, req eventapi.BookingRequest) (eventapi.BookingCreated, error) {
	envelope := bookingEnvelope{}
	err := cl.postJSON(c, "/bookings", req, &envelope)
	if err != nil {
		return eventapi.BookingCreated{}, err
	}
	if !envelope.Success {
		return eventapi.BookingCreated{}, myerrors.NewInternalError(fmt.Errorf("booking rejected: %s", envelope.Message))
	}

	return envelope.Data, nil
}

func (cl httpClient) GetUserBookings(c context.Context, userUID string) (eventapi.BookingList, error) {
	bookings := eventapi.BookingList{}
	err := cl.getJSON(c, fmt.Sprintf("/bookings?userId=%s", url.QueryEscape(userUID)), &bookings)
	if err != nil {
		return eventapi.BookingList{}, err
	}

	return bookings, nil
}

func (cl httpClient) CancelBooking(c context.Context, bookingUID string) error {
	httpStatus, _, err := cl.sender.Send(c, http.MethodDelete, cl.fullURL(fmt.Sprintf("/bookings/%s", bookingUID)), nil)
	if err != nil {
		return myerrors.NewUnavailableError(err)
	}
	if !isSuccess(httpStatus) {
		return errorFromStatus(httpStatus, "cancel booking")
	}

	return nil
}

func (cl httpClient) GetUserProfile(c context.Context, userUID string) (eventapi.UserProfile, error) {
	profile := eventapi.UserProfile{}
	err := cl.getJSON(c, fmt.Sprintf("/users/%s", userUID), &profile)
	if err != nil {
		return eventapi.UserProfile{}, err
	}

	return profile, nil
}

func (cl httpClient) UpdateUserProfile(c context.Context, userUID string, profile eventapi.UserProfile) (eventapi.UserProfile, error) {
	updated := eventapi.UserProfile{}
	requestBody, err := json.Marshal(profile)
	if err != nil {
		return eventapi.UserProfile{}, myerrors.NewInternalError(err)
	}

	httpStatus, respBody, err := cl.sender.Send(c, http.MethodPut, cl.fullURL(fmt.Sprintf("/users/%s", userUID)), requestBody)
	if err != nil {
		return eventapi.UserProfile{}, myerrors.NewUnavailableError(err)
	}
	if !isSuccess(httpStatus) {
		return eventapi.UserProfile{}, errorFromStatus(httpStatus, "update profile")
	}

	err = json.Unmarshal(respBody, &updated)
	if err != nil {
		return eventapi.UserProfile{}, myerrors.NewInternalError(fmt.Errorf("error parsing response: %s", err))
	}

	return updated, nil
}

func (cl httpClient) TrackEvent(c context.Context, event eventapi.AnalyticsEvent) error {
	return cl.postJSON(c, "/analytics/track", event, nil)
}

func (cl httpClient) getJSON(c context.Context, path string, resp interface{}) error {
	httpStatus, respBody, err := cl.sender.Send(c, http.MethodGet, cl.fullURL(path), nil)
	if err != nil {
		return myerrors.NewUnavailableError(err)
	}
	if !isSuccess(httpStatus) {
		return errorFromStatus(httpStatus, path)
	}

	err = json.Unmarshal(respBody, resp)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error parsing response of %s: %s", path, err))
	}

	return nil
}

func (cl httpClient) postJSON(c context.Context, path string, req interface{}, resp interface{}) error {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	httpStatus, respBody, err := cl.sender.Send(c, http.MethodPost, cl.fullURL(path), requestBody)
	if err != nil {
		return myerrors.NewUnavailableError(err)
	}
	if !isSuccess(httpStatus) {
		return errorFromStatus(httpStatus, path)
	}

	if resp != nil {
		err = json.Unmarshal(respBody, resp)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error parsing response of %s: %s", path, err))
		}
	}

	return nil
}

func (cl httpClient) fullURL(path string) string {
	return cl.settings.BaseURL() + path
}

func isSuccess(httpStatus int) bool {
	return httpStatus >= 200 && httpStatus < 300
}

func errorFromStatus(httpStatus int, operation string) error {
	err := fmt.Errorf("upstream returned %d on %s", httpStatus, operation)

	switch httpStatus {
	case http.StatusBadRequest:
		return myerrors.NewInvalidInputError(err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return myerrors.NewAuthenticationError(err)
	case http.StatusNotFound:
		return myerrors.NewNotFoundError(err)
	case http.StatusConflict:
		return myerrors.NewConflictError(err)
	default:
		return myerrors.NewInternalError(err)
	}
}

func encodeFilter(filter EventFilter) string {
	values := url.Values{}
	if filter.Search != "" {
		values.Set("search", filter.Search)
	}
	if len(filter.Tags) > 0 {
		values.Set("tags", strings.Join(filter.Tags, ","))
	}
	if filter.MinPrice > 0 {
		values.Set("minPrice", strconv.Itoa(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		values.Set("maxPrice", strconv.Itoa(filter.MaxPrice))
	}
	if filter.Page > 0 {
		values.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(filter.PageSize))
	}
	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}
