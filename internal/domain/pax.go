package domain

// PaxProfile is a passenger record created by staff at the counter.
// UserID links it to the passenger's PWA account once the booking code
// has been claimed; the link is claimed through a conditional update so
// two concurrent claims cannot both succeed.
type PaxProfile struct {
	ID        int32   `json:"id"`
	UserID    *int32  `json:"user_id,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	CreatedOn string  `json:"created_on"`
	UpdatedOn string  `json:"updated_on"`
	DeletedOn *string `json:"deleted_on,omitempty"`
}

// LinkedTo reports whether the profile is already linked to the given user.
func (p *PaxProfile) LinkedTo(userID int32) bool {
	return p.UserID != nil && *p.UserID == userID
}
