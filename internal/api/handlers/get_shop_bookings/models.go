package get_shop_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ParseQueryParams собирает фильтр из query параметров:
// barberId, startDate, endDate (YYYY-MM-DD), status, includeCancelled (true/false)
func ParseQueryParams(r *http.Request, requesterID, shopID int64) (*models.GetShopBookingsRequest, error) {
	req := &models.GetShopBookingsRequest{
		RequesterID: requesterID,
		ShopID:      shopID,
	}

	var err error
	if req.BarberID, err = handlers.QueryInt64(r, "barberId"); err != nil {
		return nil, err
	}
	if req.StartDate, err = handlers.QueryDate(r, "startDate"); err != nil {
		return nil, err
	}
	if req.EndDate, err = handlers.QueryDate(r, "endDate"); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if raw := query.Get("includeCancelled"); raw != "" {
		if req.IncludeCancelled, err = strconv.ParseBool(raw); err != nil {
			return nil, err
		}
	}

	return req, nil
}
