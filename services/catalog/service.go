package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

type SortOption string

const (
	SortPopular   SortOption = "popular"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortRating    SortOption = "rating"
)

// Query combines what the upstream API can filter on with the
// refinements applied locally.
type Query struct {
	Filter     upstream.EventFilter
	Difficulty string
	Duration   string
	Sort       SortOption
}

type service struct {
	client upstream.Client
	logger mylog.Logger
}

func newService(client upstream.Client, logger mylog.Logger) *service {
	return &service{
		client: client,
		logger: logger,
	}
}

func (s *service) listEvents(c context.Context, query Query) (eventapi.ExperiencePage, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch catalog (search:%q sort:%s)", query.Filter.Search, query.Sort)

	page, err := s.client.GetEvents(c, query.Filter)
	if err != nil {
		return eventapi.ExperiencePage{}, err
	}

	events := page.Events
	if query.Difficulty != "" {
		events = filterEvents(events, func(e eventapi.Experience) bool {
			return e.Difficulty == query.Difficulty
		})
	}
	if query.Duration != "" {
		events = filterEvents(events, func(e eventapi.Experience) bool {
			return strings.Contains(e.Duration, query.Duration)
		})
	}
	sortEvents(events, query.Sort)

	page.Events = events
	page.Total = len(events)

	return page, nil
}

func filterEvents(events []eventapi.Experience, keep func(eventapi.Experience) bool) []eventapi.Experience {
	filtered := []eventapi.Experience{}
	for _, e := range events {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

func sortEvents(events []eventapi.Experience, option SortOption) {
	switch option {
	case SortPriceAsc:
		sort.SliceStable(events, func(i, j int) bool { return events[i].Price < events[j].Price })
	case SortPriceDesc:
		sort.SliceStable(events, func(i, j int) bool { return events[i].Price > events[j].Price })
	case SortRating:
		sort.SliceStable(events, func(i, j int) bool { return events[i].Rating > events[j].Rating })
	default:
		sort.SliceStable(events, func(i, j int) bool { return events[i].ReviewsCount > events[j].ReviewsCount })
	}
}

func (s *service) getEvent(c context.Context, eventUID string) (eventapi.Experience, error) {
	s.logger.Log(c, eventUID, mylog.SeverityInfo, "Fetch details of event %s", eventUID)

	return s.client.GetEventByID(c, eventUID)
}

func (s *service) getAvailability(c context.Context, eventUID string) (eventapi.Availability, error) {
	return s.client.GetEventAvailability(c, eventUID)
}

func (s *service) getTimeSlots(c context.Context, eventUID string, date string) (eventapi.TimeSlots, error) {
	return s.client.GetEventTimeSlots(c, eventUID, date)
}
