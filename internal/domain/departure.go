package domain

// ShipDeparture is scheduling metadata for cruise-linked rentals.
// Departures are shared reference data with no team scoping.
type ShipDeparture struct {
	ID         int32   `json:"id"`
	ShipName   string  `json:"ship_name"`
	CruiseLine string  `json:"cruise_line"`
	DepartsAt  string  `json:"departs_at"`
	Active     bool    `json:"active"`
	CreatedOn  string  `json:"created_on"`
	UpdatedOn  string  `json:"updated_on"`
	DeletedOn  *string `json:"deleted_on,omitempty"`
}
