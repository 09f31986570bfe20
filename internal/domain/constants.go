package domain

// Сетка слотов
const (
	SlotStepMinutes      = 15
	RecoveryProbeMinutes = 14
	MinutesPerDay        = 24 * 60
)

// Значения по умолчанию для резервирования
const (
	DefaultGracePeriodMinutes     = 2
	DefaultMaxReservationAttempts = 3
	DefaultEarliestLookaheadDays  = 14
)

// Ограничения входных данных
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxBufferTimeMinutes        = 120
	MaxBookingNoticeMinutes     = 10080 // неделя
	MaxBookingNoticeDaysLimit   = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceNames             = 20
	BookingKeyDigits            = 4
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
