package domain

type BikeStatus string

const (
	BikeStatusAvailable   BikeStatus = "AVAILABLE"
	BikeStatusRented      BikeStatus = "RENTED"
	BikeStatusMaintenance BikeStatus = "MAINTENANCE"
	BikeStatusUnavailable BikeStatus = "UNAVAILABLE"
	BikeStatusMissing     BikeStatus = "MISSING"
)

type Bike struct {
	ID        int32      `json:"id"`
	TeamID    int32      `json:"team_id"`
	Label     string     `json:"label"` // physical frame label, scannable
	Model     string     `json:"model"`
	Status    BikeStatus `json:"status"`
	CreatedOn string     `json:"created_on"`
	UpdatedOn string     `json:"updated_on"`
	DeletedOn *string    `json:"deleted_on,omitempty"`
}
