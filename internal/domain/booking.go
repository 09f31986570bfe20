package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	ErrUnknownBookingStatus = errors.New("unknown booking status")
	ErrUnknownBookingType   = errors.New("unknown booking type")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCheckedIn BookingStatus = "checked-in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no-show"
	StatusBlocked   BookingStatus = "blocked"
)

// BookingType источник бронирования
type BookingType string

const (
	TypeOnline  BookingType = "online"
	TypeWalkIn  BookingType = "walk-in"
	TypeBlocked BookingType = "blocked"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
	PaymentUPI    PaymentMethod = "upi"
)

// CollectedBy кто физически получил деньги за бронирование
type CollectedBy string

const (
	CollectedByAdmin  CollectedBy = "ADMIN"
	CollectedByBarber CollectedBy = "BARBER"
)

type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "PENDING"
	SettlementStatusSettled SettlementStatus = "SETTLED"
)

// Booking бронирование барбера в салоне
type Booking struct {
	ID              int64
	ShopID          int64
	BarberID        int64
	UserID          *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString // start+duration, после полуночи переносится на следующие сутки
	DurationMinutes int
	BufferMinutes   int // буфер салона на момент создания
	ServiceNames    []string
	Status          BookingStatus
	Type            BookingType
	PaymentMethod   PaymentMethod

	// Финансовый снимок, записывается один раз при создании
	Financials FinancialSplit

	SettlementStatus SettlementStatus
	SettlementID     *int64

	BookingKey         string // 4-значный PIN для check-in
	IsRated            bool
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartMinutes минута начала от полуночи даты бронирования
func (b *Booking) StartMinutes() (int, error) {
	return b.StartTime.Minutes()
}

// OccupiedUntil конец занятости барбера с учетом буфера, в минутах от полуночи даты бронирования
func (b *Booking) OccupiedUntil() (int, error) {
	start, err := b.StartMinutes()
	if err != nil {
		return 0, err
	}
	return start + b.DurationMinutes + b.BufferMinutes, nil
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsSettlementEligible завершенное и еще не вошедшее во взаиморасчет бронирование
func (b *Booking) IsSettlementEligible() bool {
	return b.Status == StatusCompleted &&
		(b.SettlementStatus == SettlementStatusPending || b.SettlementStatus == "")
}

// bookingTransitions допустимые переходы статусов
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusUpcoming, StatusCancelled},
	StatusUpcoming:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCompleted},
	StatusBlocked:   {StatusCancelled},
}

// CanTransition проверяет переход from -> to
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStatus статус нового бронирования
func InitialStatus(bookingType BookingType, autoApprove bool) BookingStatus {
	switch {
	case bookingType == TypeBlocked:
		return StatusBlocked
	case bookingType == TypeOnline && !autoApprove:
		return StatusPending
	default:
		return StatusUpcoming
	}
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusUpcoming, StatusCheckedIn, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusBlocked:
		return st, nil
	}
	return "", ErrUnknownBookingStatus
}

func ParseBookingType(s string) (BookingType, error) {
	switch bt := BookingType(s); bt {
	case TypeOnline, TypeWalkIn, TypeBlocked:
		return bt, nil
	}
	return "", ErrUnknownBookingType
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch pm := PaymentMethod(s); pm {
	case PaymentCash, PaymentOnline, PaymentUPI:
		return pm, nil
	}
	return "", ErrUnknownPaymentMethod
}

// ShopBookingsFilter фильтр бронирований салона
type ShopBookingsFilter struct {
	ShopID           int64          // Обязательный параметр
	BarberID         *int64         // Фильтр по барберу
	StartDate        *time.Time     // Начало периода включительно
	EndDate          *time.Time     // Конец периода включительно
	Status           *BookingStatus // Фильтр по статусу
	IncludeCancelled bool
}

// EligibleBookingsFilter фильтр бронирований для взаиморасчетов.
// Пустой ShopID - все салоны, пустой BookingIDs - все подходящие.
type EligibleBookingsFilter struct {
	ShopID     *int64
	BookingIDs []int64
	CutoffDate *time.Time
}
