package domain

type PoiCategory string

const (
	PoiCategoryDepot     PoiCategory = "DEPOT"
	PoiCategoryStaffPick PoiCategory = "STAFF_PICK"
	PoiCategoryGeneral   PoiCategory = "GENERAL"
)

// PointOfInterest is a map entry shown in the PWA. A DEPOT entry mirrors
/// a Team record: it is always paired with exactly one team and is
// pre-approved at creation. Non-depot entries carry an approval workflow
// and may be team-scoped or global (nil TeamID).
type PointOfInterest struct {
	ID        int32       `json:"id"`
	TeamID    *int32      `json:"team_id,omitempty"`
	Category  PoiCategory `json:"category"`
	Name      string      `json:"name"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Approved  bool        `json:"approved"`
	Active    bool        `json:"active"`
	CreatedBy int32       `json:"created_by"`
	CreatedOn string      `json:"created_on"`
	UpdatedOn string      `json:"updated_on"`
	DeletedOn *string     `json:"deleted_on,omitempty"`
}
