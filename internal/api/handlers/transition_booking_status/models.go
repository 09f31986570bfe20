package transition_booking_status

// TransitionStatusRequest HTTP request model
type TransitionStatusRequest struct {
	Status string  `json:"status"`
	PIN    *string `json:"pin,omitempty"`    // для checked-in
	Reason *string `json:"reason,omitempty"` // для cancelled
}
