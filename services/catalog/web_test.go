package catalog

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

var (
	rafting = eventapi.Experience{ID: "2", Title: "Рафтинг по реке Катунь", Price: 3500, Rating: 4.9, ReviewsCount: 89, Difficulty: "hard", Duration: "4 часа"}
	cooking = eventapi.Experience{ID: "3", Title: "Мастер-класс по алтайской кухне", Price: 1800, Rating: 4.7, ReviewsCount: 56, Difficulty: "easy", Duration: "3 часа"}
	horses  = eventapi.Experience{ID: "4", Title: "Конная прогулка к водопаду Корбу", Price: 4000, Rating: 4.6, ReviewsCount: 72, Difficulty: "medium", Duration: "6 часов"}
)

func TestCatalogService(t *testing.T) {

	t.Run("List events sorted on price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetEvents(gomock.Any(), upstream.EventFilter{}).
			Return(page(rafting, cooking, horses), nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/events?sort=price_asc", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Less(t, indexOf(got, "кухне"), indexOf(got, "Рафтинг"))
		assert.Less(t, indexOf(got, "Рафтинг"), indexOf(got, "Конная"))
	})

	t.Run("List events filtered on difficulty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetEvents(gomock.Any(), upstream.EventFilter{Search: "алтай"}).
			Return(page(rafting, cooking, horses), nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/events?search=алтай&difficulty=easy", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "кухне")
		assert.NotContains(t, got, "Рафтинг")
		assert.Contains(t, got, `"total": 1`)
	})

	t.Run("Event details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetEventByID(gomock.Any(), "2").Return(rafting, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/events/2", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Рафтинг по реке Катунь")
	})

	t.Run("Availability", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetEventAvailability(gomock.Any(), "2").
			Return(eventapi.Availability{Dates: []string{"2025-09-12", "2025-09-13"}}, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/events/2/availability", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "2025-09-12")
	})

	t.Run("Time slots", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetEventTimeSlots(gomock.Any(), "2", "2025-09-12").
			Return(eventapi.TimeSlots{Times: []string{"09:00", "14:00"}}, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/events/2/time-slots?date=2025-09-12", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "14:00")
	})

	t.Run("Upstream failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, client := setup(ctrl)

		// given
		client.EXPECT().GetEventByID(gomock.Any(), "99").
			Return(eventapi.Experience{}, myerrors.NewNotFoundError(fmt.Errorf("event with uid 99 not found")))

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/events/99", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func setup(ctrl *gomock.Controller) (*mux.Router, *upstream.MockClient) {
	client := upstream.NewMockClient(ctrl)

	sut := NewWebService(client)
	router := mux.NewRouter()
	sut.RegisterEndpoints(nil, router)

	return router, client
}

func page(events ...eventapi.Experience) eventapi.ExperiencePage {
	return eventapi.ExperiencePage{
		Events:     events,
		Total:      len(events),
		Page:       1,
		PageSize:   10,
		TotalPages: 1,
	}
}

func indexOf(haystack string, needle string) int {
	return strings.Index(haystack, needle)
}
