package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID          int64    `json:"shopId"`
	BarberID        *int64   `json:"barberId,omitempty"` // без него - любой свободный барбер
	UserID          *int64   `json:"userId,omitempty"`
	BookingDate     string   `json:"bookingDate"` // "2026-03-02"
	StartTime       string   `json:"startTime"`   // "10:00"
	DurationMinutes int      `json:"durationMinutes"`
	ServiceNames    []string `json:"serviceNames"`
	OriginalPrice   *float64 `json:"originalPrice"`
	PaymentMethod   string   `json:"paymentMethod"`
	Type            string   `json:"type"`
	Notes           *string  `json:"notes,omitempty"`
}

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(requesterID int64) (*createBooking.Request, error) {
	bookingDate, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	bookingType := r.Type
	if bookingType == "" {
		bookingType = string(domain.TypeOnline)
	}

	return &createBooking.Request{
		RequesterID:     requesterID,
		ShopID:          r.ShopID,
		BarberID:        r.BarberID,
		UserID:          r.UserID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		ServiceNames:    r.ServiceNames,
		OriginalPrice:   r.OriginalPrice,
		PaymentMethod:   r.PaymentMethod,
		Type:            bookingType,
		Notes:           r.Notes,
	}, nil
}
