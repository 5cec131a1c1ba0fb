package profile

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

func TestProfileService(t *testing.T) {

	t.Run("Get profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetUserProfile(gomock.Any(), "123456").Return(eventapi.UserProfile{
			ID:            "123456",
			FirstName:     "Александр",
			LastName:      "Иванов",
			LoyaltyPoints: 250,
		}, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/users/123456", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "Александр")
		assert.Contains(t, response.Body.String(), `"loyaltyPoints": 250`)
	})

	t.Run("Update profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given: the uid in the path wins over the one in the body
		client.EXPECT().UpdateUserProfile(gomock.Any(), "123456", gomock.Any()).DoAndReturn(
			func(c interface{}, userUID string, profile eventapi.UserProfile) (eventapi.UserProfile, error) {
				assert.Equal(t, "123456", profile.ID)
				assert.Equal(t, "maria@example.com", profile.Email)
				return profile, nil
			})

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/users/123456",
			strings.NewReader(`{"id":"999","email":"maria@example.com"}`))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/json")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("Update profile with malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setup(ctrl)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/users/123456", strings.NewReader(`{`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("List bookings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetUserBookings(gomock.Any(), "123456").Return(eventapi.BookingList{
			Bookings: []eventapi.Booking{
				{ID: "booking-1", Status: eventapi.BookingStatusConfirmed},
			},
		}, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/users/123456/bookings", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "booking-1")
	})

	t.Run("Cancel missing booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().CancelBooking(gomock.Any(), "nope").Return(
			myerrors.NewNotFoundError(fmt.Errorf("booking nope not found")))

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/bookings/nope", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func setup(ctrl *gomock.Controller) (*mux.Router, *upstream.MockClient) {
	client := upstream.NewMockClient(ctrl)

	router := mux.NewRouter()
	NewWebService(client).RegisterEndpoints(router)

	return router, client
}
