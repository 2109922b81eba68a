package domain

type RentalStatus string

const (
	RentalStatusPendingPayment RentalStatus = "PENDING_PAYMENT"
	RentalStatusConfirmed      RentalStatus = "CONFIRMED"
	RentalStatusActive         RentalStatus = "ACTIVE"
	RentalStatusCompleted      RentalStatus = "COMPLETED"
	RentalStatusCancelled      RentalStatus = "CANCELLED"
	RentalStatusOverdue        RentalStatus = "OVERDUE"
)

// Terminal reports whether the status is an end state of the rental
// lifecycle. End team is only ever set once a rental reaches one.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

type Rental struct {
	ID              int32        `json:"id"`
	PaxProfileID    int32        `json:"pax_profile_id"`
	BikeID          int32        `json:"bike_id"`
	StartTeamID     int32        `json:"start_team_id"`
	EndTeamID       *int32       `json:"end_team_id,omitempty"`
	ShipDepartureID *int32       `json:"ship_departure_id,omitempty"`
	StaffID         int32        `json:"staff_id"` // staff actor who created the rental
	BookingCode     string       `json:"booking_code"`
	Status          RentalStatus `json:"status"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	CreatedOn       string       `json:"created_on"`
	UpdatedOn       string       `json:"updated_on"`
	DeletedOn       *string      `json:"deleted_on,omitempty"`
}
