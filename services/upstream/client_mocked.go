package upstream

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/lib/myuuid"
	"github.com/artaltay/miniapp/services/eventapi"
)

const defaultPageSize = 10

// mockedClient serves generated data so the app keeps working without
// a reachable backend. The random source is injected so tests can pin
// the output.
type mockedClient struct {
	mutex  sync.Mutex
	random *rand.Rand
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

func NewMockedClient(seed int64, nower mytime.Nower, uuider myuuid.UUIDer) Client {
	return &mockedClient{
		random: rand.New(rand.NewSource(seed)),
		nower:  nower,
		uuider: uuider,
	}
}

func (cl *mockedClient) GetEvents(c context.Context, filter EventFilter) (eventapi.ExperiencePage, error) {
	filtered := []eventapi.Experience{}
	for _, event := range mockExperiences {
		if matchesFilter(event, filter) {
			filtered = append(filtered, event)
		}
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return eventapi.ExperiencePage{
		Events:     paginate(filtered, page, pageSize),
		Total:      len(filtered),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (len(filtered) + pageSize - 1) / pageSize,
	}, nil
}

func matchesFilter(event eventapi.Experience, filter EventFilter) bool {
	if len(filter.Tags) > 0 && !hasAnyTag(event.Tags, filter.Tags) {
		return false
	}
	if filter.MinPrice > 0 && event.Price < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && event.Price > filter.MaxPrice {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(event.Title), needle) &&
			!strings.Contains(strings.ToLower(event.Description), needle) &&
			!strings.Contains(strings.ToLower(event.Location), needle) {
			return false
		}
	}

	return true
}

func hasAnyTag(eventTags []string, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range eventTags {
			if t == w {
				return true
			}
		}
	}

	return false
}

func paginate(events []eventapi.Experience, page int, pageSize int) []eventapi.Experience {
	start := (page - 1) * pageSize
	if start >= len(events) {
		return []eventapi.Experience{}
	}
	end := start + pageSize
	if end > len(events) {
		end = len(events)
	}

	return events[start:end]
}

func (cl *mockedClient) GetEventByID(c context.Context, eventUID string) (eventapi.Experience, error) {
	event := mockExperiences[0]
	for _, e := range mockExperiences {
		if e.ID == eventUID {
			event = e
			break
		}
	}

	// detail page carries more than the list entry
	event.Included = mockIncluded
	event.NotIncluded = mockNotIncluded
	event.Requirements = mockRequirements
	event.Reviews = mockReviews
	event.Organizer = mockOrganizer

	return event, nil
}

// GetEventAvailability offers the next 30 days, with every 7th day
// unavailable.
func (cl *mockedClient) GetEventAvailability(c context.Context, eventUID string) (eventapi.Availability, error) {
	today := cl.nower.Now()

	dates := []string{}
	for i := 1; i <= 30; i++ {
		if i%7 == 0 {
			continue
		}
		dates = append(dates, today.AddDate(0, 0, i).Format("2006-01-02"))
	}

	return eventapi.Availability{Dates: dates}, nil
}

// GetEventTimeSlots randomly prunes the candidate list but never
// returns an empty one.
func (cl *mockedClient) GetEventTimeSlots(c context.Context, eventUID string, date string) (eventapi.TimeSlots, error) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	times := []string{}
	for _, t := range candidateTimeSlots {
		if cl.random.Float64() > 0.3 {
			times = append(times, t)
		}
	}
	if len(times) == 0 {
		times = candidateTimeSlots
	}

	return eventapi.TimeSlots{Times: times}, nil
}

func (cl *mockedClient) CreateBooking(c context.Context, req eventapi.BookingRequest) (eventapi.BookingCreated, error) {
	return eventapi.BookingCreated{
		BookingID: fmt.Sprintf("booking-%s", cl.uuider.Create()),
	}, nil
}

func (cl *mockedClient) GetUserBookings(c context.Context, userUID string) (eventapi.BookingList, error) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	today := cl.nower.Now()

	count := cl.random.Intn(3) + 3
	bookings := []eventapi.Booking{}
	for i := 0; i < count; i++ {
		event := mockExperiences[cl.random.Intn(len(mockExperiences))]
		participants := cl.random.Intn(4) + 1
		statuses := []eventapi.BookingStatus{
			eventapi.BookingStatusConfirmed,
			eventapi.BookingStatusPending,
			eventapi.BookingStatusCompleted,
		}

		bookings = append(bookings, eventapi.Booking{
			ID:           fmt.Sprintf("booking-%d-%d", today.Unix(), i),
			EventID:      event.ID,
			UserID:       userUID,
			Status:       statuses[cl.random.Intn(len(statuses))],
			Date:         today.AddDate(0, 0, cl.random.Intn(30)).Format("2006-01-02"),
			Time:         candidateTimeSlots[cl.random.Intn(len(candidateTimeSlots))],
			Participants: participants,
			TotalPrice:   event.Price * participants,
			CreatedAt:    today.Add(-time.Duration(cl.random.Intn(30*24)) * time.Hour),
			Event: eventapi.BookedEvent{
				Title:    event.Title,
				Image:    event.Image,
				Duration: event.Duration,
				Location: event.Location,
			},
		})
	}

	return eventapi.BookingList{Bookings: bookings}, nil
}

func (cl *mockedClient) CancelBooking(c context.Context, bookingUID string) error {
	return nil
}

func (cl *mockedClient) GetUserProfile(c context.Context, userUID string) (eventapi.UserProfile, error) {
	profile := mockProfile
	if userUID != "" {
		profile.ID = userUID
	}

	return profile, nil
}

func (cl *mockedClient) UpdateUserProfile(c context.Context, userUID string, profile eventapi.UserProfile) (eventapi.UserProfile, error) {
	profile.ID = userUID

	return profile, nil
}

func (cl *mockedClient) TrackEvent(c context.Context, event eventapi.AnalyticsEvent) error {
	return nil
}
