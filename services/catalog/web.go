package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/upstream"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(client upstream.Client) *webService {
	logger := mylog.New("catalog")

	return &webService{
		logger:  logger,
		service: newService(client, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/events", s.listEventsPage()).Methods("GET")
	router.HandleFunc("/api/events/{eventUID}", s.eventDetailsPage()).Methods("GET")
	router.HandleFunc("/api/events/{eventUID}/availability", s.availabilityPage()).Methods("GET")
	router.HandleFunc("/api/events/{eventUID}/time-slots", s.timeSlotsPage()).Methods("GET")
}

func (s *webService) listEventsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		page, err := s.service.listEvents(c, queryFromRequest(r))
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, page)
	}
}

func (s *webService) eventDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		event, err := s.service.getEvent(c, mux.Vars(r)["eventUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, event)
	}
}

func (s *webService) availabilityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		availability, err := s.service.getAvailability(c, mux.Vars(r)["eventUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, availability)
	}
}

func (s *webService) timeSlotsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		slots, err := s.service.getTimeSlots(c, mux.Vars(r)["eventUID"], r.URL.Query().Get("date"))
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, slots)
	}
}

func queryFromRequest(r *http.Request) Query {
	values := r.URL.Query()

	filter := upstream.EventFilter{
		Search:   values.Get("search"),
		MinPrice: intOrZero(values.Get("minPrice")),
		MaxPrice: intOrZero(values.Get("maxPrice")),
		Page:     intOrZero(values.Get("page")),
		PageSize: intOrZero(values.Get("pageSize")),
	}
	if tags := values.Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	return Query{
		Filter:     filter,
		Difficulty: values.Get("difficulty"),
		Duration:   values.Get("duration"),
		Sort:       SortOption(values.Get("sort")),
	}
}

func intOrZero(value string) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}

	return i
}
