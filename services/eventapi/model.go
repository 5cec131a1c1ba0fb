package eventapi

import (
	"time"
)

// Experience describes a single bookable activity as served by the
// upstream catalog API.
type Experience struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	Price           int       `json:"price"`
	OriginalPrice   int       `json:"originalPrice"`
	Duration        string    `json:"duration"`
	Location        string    `json:"location"`
	Rating          float64   `json:"rating"`
	ReviewsCount    int       `json:"reviewsCount"`
	MaxParticipants int       `json:"maxParticipants"`
	AvailableSpots  int       `json:"availableSpots"`
	Difficulty      string    `json:"difficulty,omitempty"`
	Tags            []string  `json:"tags"`
	Included        []string  `json:"included,omitempty"`
	NotIncluded     []string  `json:"notIncluded,omitempty"`
	Requirements    []string  `json:"requirements,omitempty"`
	Reviews         []Review  `json:"reviews,omitempty"`
	Organizer       Organizer `json:"organizer"`
}

func (e Experience) HasDiscount() bool {
	return e.OriginalPrice > e.Price
}

type Review struct {
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	Date      string `json:"date"`
}

type Organizer struct {
	Name        string  `json:"name"`
	Photo       string  `json:"photo"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

// ExperiencePage is the paginated list shape of the upstream /events
// endpoint.
type ExperiencePage struct {
	Events     []Experience `json:"events"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

type Availability struct {
	Dates []string `json:"dates"`
}

type TimeSlots struct {
	Times []string `json:"times"`
}

type PaymentMethod string

const (
	PaymentMethodUndefined   PaymentMethod = ""
	PaymentMethodTelegramPay PaymentMethod = "telegram_pay"
	PaymentMethodCash        PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodTelegramPay || m == PaymentMethodCash
}

type Contact struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// IsComplete requires a name and at least one way to reach the
// customer. Special requests are always optional.
func (c Contact) IsComplete() bool {
	return c.Name != "" && (c.Phone != "" || c.Email != "")
}

// BookingRequest is the payload of the upstream POST /bookings call.
type BookingRequest struct {
	EventID         string        `json:"eventId"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Participants    int           `json:"participants"`
	ContactName     string        `json:"contactName"`
	ContactPhone    string        `json:"contactPhone"`
	ContactEmail    string        `json:"contactEmail"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	UsePoints       bool          `json:"usePoints"`
	UserID          string        `json:"userId"`
}

type BookingCreated struct {
	BookingID string `json:"bookingId"`
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is an already issued reservation as returned from the
// upstream GET /bookings endpoint.
type Booking struct {
	ID           string          `json:"id"`
	EventID      string          `json:"eventId"`
	UserID       string          `json:"userId"`
	Status       BookingStatus   `json:"status"`
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	Participants int             `json:"participants"`
	TotalPrice   int             `json:"totalPrice"`
	CreatedAt    time.Time       `json:"createdAt"`
	Event        BookedEvent `json:"event"`
}

type BookedEvent struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Duration string `json:"duration"`
	Location string `json:"location"`
}

type BookingList struct {
	Bookings []Booking `json:"bookings"`
}

type UserProfile struct {
	ID               string          `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Avatar           string          `json:"avatar"`
	LoyaltyPoints    int             `json:"loyaltyPoints"`
	RegistrationDate string          `json:"registrationDate"`
	Preferences      UserPreferences `json:"preferences"`
	Statistics       UserStatistics  `json:"statistics"`
}

type UserPreferences struct {
	Categories    []string `json:"categories"`
	Notifications bool     `json:"notifications"`
}

type UserStatistics struct {
	TotalBookings      int      `json:"totalBookings"`
	CompletedEvents    int      `json:"completedEvents"`
	FavoriteCategories []string `json:"favoriteCategories"`
	TotalSpent         int      `json:"totalSpent"`
}

// AnalyticsEvent is what gets posted to the upstream analytics tracker.
type AnalyticsEvent struct {
	Event     string            `json:"event"`
	Timestamp time.Time         `json:"timestamp"`
	Params    map[string]string `json:"params,omitempty"`
}

// CartLine keeps one experience in a shopper's cart. Date and Time stay
// empty until the shopper picks them during checkout.
type CartLine struct {
	EventUID string
	Quantity int
	Date     string
	Time     string
}

// LineItem is a cart line enriched with catalog data, frozen at the
// moment a checkout session is created.
type LineItem struct {
	EventUID        string
	Title           string
	UnitPrice       int
	Quantity        int
	MaxParticipants int
	Date            string
	Time            string
}

func (li LineItem) TotalPrice() int {
	return li.UnitPrice * li.Quantity
}

// CheckoutSession is the single mutable record behind a checkout
// wizard: everything the shopper entered so far plus the loyalty
// context needed to price the order.
type CheckoutSession struct {
	UID           string
	UserUID       string
	Lines         []LineItem
	Contact       Contact
	PaymentMethod PaymentMethod
	UsePoints     bool
	LoyaltyPoints int
	FromCart      bool
	CreatedAt     time.Time
	LastModified  *time.Time
}

func (s CheckoutSession) SubTotal() int {
	total := 0
	for _, li := range s.Lines {
		total += li.TotalPrice()
	}

	return total
}

// Discount is how much of the total is covered by loyalty points:
// never more than the points balance and never more than 20% of the
// order.
func (s CheckoutSession) Discount() int {
	if !s.UsePoints {
		return 0
	}
	discount := s.LoyaltyPoints
	if limit := s.SubTotal() * 20 / 100; discount > limit {
		discount = limit
	}

	return discount
}

func (s CheckoutSession) GrandTotal() int {
	return s.SubTotal() - s.Discount()
}

// ScheduleComplete tells whether every line has a date and a time
// picked.
func (s CheckoutSession) ScheduleComplete() bool {
	if len(s.Lines) == 0 {
		return false
	}
	for _, li := range s.Lines {
		if li.Date == "" || li.Time == "" {
			return false
		}
	}

	return true
}

// ConfirmationRecord is what remains after a completed checkout.
type ConfirmationRecord struct {
	UID           string
	UserUID       string
	SessionUID    string
	BookingIDs    []string
	TotalCharged  int
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}
