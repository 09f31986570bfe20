package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID     int64            // ID пользователя, выполняющего запрос
	ShopID          int64            // ID салона
	BarberID        *int64           // ID барбера, nil - любой свободный
	UserID          *int64           // ID клиента, обязателен для online
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Суммарная длительность услуг
	ServiceNames    []string         // Названия услуг
	OriginalPrice   *float64         // Цена до скидки, обязательна
	PaymentMethod   string           // cash, online, upi
	Type            string           // online, walk-in, blocked
	Notes           *string          // Дополнительные заметки (опционально)
}

// CreatedEvent payload события booking.created
type CreatedEvent struct {
	BookingID int64  `json:"bookingId"`
	ShopID    int64  `json:"shopId"`
	BarberID  int64  `json:"barberId"`
	UserID    *int64 `json:"userId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
	Type      string `json:"type"`
}

// Options параметры резервирования из конфигурации
type Options struct {
	GracePeriodMinutes     int
	MaxReservationAttempts int
}
