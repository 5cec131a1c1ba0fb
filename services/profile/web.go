package profile

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

// webService exposes the user's profile and booking history. It is a
// thin pass-through: the backend owns this data, nothing is cached
// locally.
type webService struct {
	client upstream.Client
	logger mylog.Logger
}

func NewWebService(client upstream.Client) *webService {
	return &webService{
		client: client,
		logger: mylog.New("profile"),
	}
}

func (s *webService) RegisterEndpoints(router *mux.Router) {
	router.HandleFunc("/api/users/{userUID}", s.getProfilePage()).Methods("GET")
	router.HandleFunc("/api/users/{userUID}", s.updateProfilePage()).Methods("PUT")
	router.HandleFunc("/api/users/{userUID}/bookings", s.getBookingsPage()).Methods("GET")
	router.HandleFunc("/api/bookings/{bookingUID}", s.cancelBookingPage()).Methods("DELETE")
}

func (s *webService) getProfilePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		userUID := mux.Vars(r)["userUID"]

		profile, err := s.client.GetUserProfile(c, userUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, profile)
	}
}

func (s *webService) updateProfilePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		userUID := mux.Vars(r)["userUID"]

		profile := eventapi.UserProfile{}
		err := json.NewDecoder(r.Body).Decode(&profile)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing profile: %s", err)))
			return
		}
		profile.ID = userUID

		updated, err := s.client.UpdateUserProfile(c, userUID, profile)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s *webService) getBookingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		userUID := mux.Vars(r)["userUID"]

		bookings, err := s.client.GetUserBookings(c, userUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, bookings)
	}
}

func (s *webService) cancelBookingPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		bookingUID := mux.Vars(r)["bookingUID"]

		err := s.client.CancelBooking(c, bookingUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{})
	}
}
