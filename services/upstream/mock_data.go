package upstream

import (
	"github.com/artaltay/miniapp/services/eventapi"
)

var candidateTimeSlots = []string{"09:00", "11:00", "14:00", "16:00", "18:00"}

var mockExperiences = []eventapi.Experience{
	{
		ID:              "1",
		Title:           "Экскурсия по Чемальскому тракту",
		Description:     "Увлекательное путешествие по живописному Чемальскому тракту с посещением знаковых мест и природных достопримечательностей.",
		Image:           "https://images.unsplash.com/photo-1543922558-d9a3b33c5b42",
		Price:           2500,
		OriginalPrice:   3000,
		Duration:        "8 часов",
		Location:        "Чемал, Республика Алтай",
		Rating:          4.8,
		ReviewsCount:    124,
		MaxParticipants: 15,
		AvailableSpots:  8,
		Difficulty:      "easy",
		Tags:            []string{"природа", "экскурсия", "горы"},
	},
	{
		ID:              "2",
		Title:           "Рафтинг по реке Катунь",
		Description:     "Захватывающий сплав по горной реке Катунь с опытными инструкторами. Подходит как для новичков, так и для опытных туристов.",
		Image:           "https://images.unsplash.com/photo-1504280317859-8d6a9c6b7e7a",
		Price:           3500,
		OriginalPrice:   3500,
		Duration:        "4 часа",
		Location:        "Река Катунь, Республика Алтай",
		Rating:          4.9,
		ReviewsCount:    89,
		MaxParticipants: 10,
		AvailableSpots:  4,
		Difficulty:      "hard",
		Tags:            []string{"активный отдых", "рафтинг", "вода"},
	},
	{
		ID:              "3",
		Title:           "Мастер-класс по алтайской кухне",
		Description:     "Погрузитесь в традиции алтайской кухни и научитесь готовить национальные блюда под руководством опытного шеф-повара.",
		Image:           "https://images.unsplash.com/photo-1556910103-1c02745aae4d",
		Price:           1800,
		OriginalPrice:   2200,
		Duration:        "3 часа",
		Location:        "Горно-Алтайск, Республика Алтай",
		Rating:          4.7,
		ReviewsCount:    56,
		MaxParticipants: 8,
		AvailableSpots:  6,
		Difficulty:      "easy",
		Tags:            []string{"кулинария", "мастер-класс", "традиции"},
	},
	{
		ID:              "4",
		Title:           "Конная прогулка к водопаду Корбу",
		Description:     "Живописная конная прогулка через горные тропы к одному из красивейших водопадов Алтая - водопаду Корбу.",
		Image:           "https://images.unsplash.com/photo-1551525212-a1f4e1e2c192",
		Price:           4000,
		OriginalPrice:   4500,
		Duration:        "6 часов",
		Location:        "Телецкое озеро, Республика Алтай",
		Rating:          4.6,
		ReviewsCount:    72,
		MaxParticipants: 8,
		AvailableSpots:  3,
		Difficulty:      "medium",
		Tags:            []string{"конные прогулки", "природа", "водопад"},
	},
	{
		ID:              "5",
		Title:           "Фототур \"Краски Алтая\"",
		Description:     "Уникальная возможность запечатлеть самые живописные места Алтая под руководством профессионального фотографа.",
		Image:           "https://images.unsplash.com/photo-1506744038136-46273834b3fb",
		Price:           5500,
		OriginalPrice:   5500,
		Duration:        "2 дня",
		Location:        "Различные локации, Республика Алтай",
		Rating:          4.9,
		ReviewsCount:    45,
		MaxParticipants: 6,
		AvailableSpots:  2,
		Difficulty:      "medium",
		Tags:            []string{"фотография", "природа", "тур"},
	},
	{
		ID:              "6",
		Title:           "Экскурсия в Каракольскую долину",
		Description:     "Путешествие в мистическую Каракольскую долину, известную своими древними курганами и петроглифами.",
		Image:           "https://images.unsplash.com/photo-1472396961693-142e6e269027",
		Price:           2800,
		OriginalPrice:   3200,
		Duration:        "10 часов",
		Location:        "Каракольская долина, Республика Алтай",
		Rating:          4.7,
		ReviewsCount:    63,
		MaxParticipants: 12,
		AvailableSpots:  7,
		Difficulty:      "easy",
		Tags:            []string{"история", "археология", "экскурсия"},
	},
}

var mockIncluded = []string{
	"Профессиональный гид",
	"Транспорт",
	"Питание (обед)",
	"Фотографии с мероприятия",
	"Страховка",
}

var mockNotIncluded = []string{
	"Алкогольные напитки",
	"Личные расходы",
	"Дополнительные активности",
}

var mockRequirements = []string{
	"Удобная обувь и одежда",
	"Солнцезащитные средства",
	"Документы (паспорт)",
}

var mockReviews = []eventapi.Review{
	{
		UserName:  "Анна М.",
		UserPhoto: "https://randomuser.me/api/portraits/women/44.jpg",
		Rating:    5,
		Text:      "Потрясающее мероприятие! Гид был очень знающим и дружелюбным. Всем рекомендую!",
		Date:      "2025-04-15",
	},
	{
		UserName:  "Иван К.",
		UserPhoto: "https://randomuser.me/api/portraits/men/32.jpg",
		Rating:    4,
		Text:      "Очень понравилось, но хотелось бы больше времени на некоторых локациях.",
		Date:      "2025-04-02",
	},
	{
		UserName:  "Мария С.",
		UserPhoto: "https://randomuser.me/api/portraits/women/68.jpg",
		Rating:    5,
		Text:      "Великолепные виды и отличная организация. Обязательно приеду еще раз!",
		Date:      "2025-03-20",
	},
}

var mockOrganizer = eventapi.Organizer{
	Name:        "Алтай Тревел",
	Photo:       "https://randomuser.me/api/portraits/men/75.jpg",
	Description: "Организатор экскурсий и активного отдыха на Алтае с 2010 года",
	Rating:      4.8,
}

var mockProfile = eventapi.UserProfile{
	ID:               "123456",
	FirstName:        "Александр",
	LastName:         "Иванов",
	Email:            "alex@example.com",
	Phone:            "+7 (999) 123-45-67",
	Avatar:           "https://randomuser.me/api/portraits/men/32.jpg",
	LoyaltyPoints:    250,
	RegistrationDate: "2024-01-15",
	Preferences: eventapi.UserPreferences{
		Categories:    []string{"природа", "активный отдых", "экскурсии"},
		Notifications: true,
	},
	Statistics: eventapi.UserStatistics{
		TotalBookings:      8,
		CompletedEvents:    5,
		FavoriteCategories: []string{"природа", "экскурсии"},
		TotalSpent:         15600,
	},
}
