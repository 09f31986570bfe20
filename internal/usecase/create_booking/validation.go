package create_booking

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// parsedRequest запрос после разбора перечислений
type parsedRequest struct {
	*Request
	bookingType   domain.BookingType
	paymentMethod domain.PaymentMethod
	start         int
}

// validateRequest проверяет обязательные поля и их формат
func validateRequest(req *Request) (*parsedRequest, error) {
	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.ShopID <= 0 {
		return nil, fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.BarberID != nil && *req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	start, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if len(req.ServiceNames) > domain.MaxServiceNames {
		return nil, fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServiceNames)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	bookingType, err := domain.ParseBookingType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	paymentMethod, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.OriginalPrice == nil {
		return nil, domain.WithReason(ErrInvalidInput, "originalPrice is required")
	}

	if price := *req.OriginalPrice; math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, ErrInvalidPrice
	}

	return &parsedRequest{
		Request:       req,
		bookingType:   bookingType,
		paymentMethod: paymentMethod,
		start:         start,
	}, nil
}

// validateTiming политика салона по времени записи. Walk-in и blocked не проверяются.
func validateTiming(req *parsedRequest, shop *domain.Shop, now time.Time, grace int) error {
	if req.bookingType != domain.TypeOnline {
		return nil
	}

	days := domain.DaysBetween(now, req.Date)
	untilStart := minutesUntil(req.Date, req.start, now)

	if untilStart < -grace {
		return ErrPastDateTime
	}

	if shop.HasMaxBookingNotice() && days > shop.MaxBookingNotice {
		return domain.WithReason(ErrDateTooFarInFuture,
			fmt.Sprintf("Can only book %d days in advance", shop.MaxBookingNotice))
	}

	if untilStart < shop.MinBookingNotice-grace {
		return domain.WithReason(ErrTooLateToBook,
			fmt.Sprintf("Must book at least %d minutes in advance", shop.MinBookingNotice))
	}

	return nil
}

// minutesUntil минут от now до начала бронирования (в часах салона)
func minutesUntil(date time.Time, start int, now time.Time) int {
	return domain.DaysBetween(now, date)*domain.MinutesPerDay + start - domain.MinuteOfDay(now)
}

// checkRequesterAccess walk-in и blocked создает только владелец салона,
// online - только сам клиент
func checkRequesterAccess(req *parsedRequest, shop *domain.Shop) error {
	switch req.bookingType {
	case domain.TypeWalkIn, domain.TypeBlocked:
		if shop.OwnerID != req.RequesterID {
			return ErrAccessDenied
		}
	case domain.TypeOnline:
		if req.UserID == nil {
			return ErrUserRequired
		}
		if *req.UserID != req.RequesterID {
			return ErrAccessDenied
		}
	}
	return nil
}
