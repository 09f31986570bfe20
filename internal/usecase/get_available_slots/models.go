package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID          int64     // ID салона
	BarberID        *int64    // ID барбера, nil - любой
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность услуг
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	ShopID          int64              // ID салона
	BarberID        *int64             // ID барбера, nil - любой
	DurationMinutes int                // Длительность услуг
	Slots           []types.TimeString // Время начала по возрастанию
}

// EarliestRequest модель запроса ближайшего свободного слота
type EarliestRequest struct {
	ShopID          int64
	BarberID        *int64
	DurationMinutes int
}

// EarliestResponse ближайший слот; Found = false, если в горизонте поиска слотов нет
type EarliestResponse struct {
	Found     bool
	Date      time.Time
	StartTime types.TimeString
}
