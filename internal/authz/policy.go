package authz

// gate runs the checks every policy method applies first: anonymous
// actors are always denied, and a Super Admin passes every verb. Policy
// bodies that must not honor the override (pax force-delete, the
// super-admin target rules in UserPolicy) skip gate and spell their
// checks out.
func gate(actor Actor) (Decision, bool) {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated), true
	}
	if actor.IsSuperAdmin() {
		return Allow(), true
	}
	return Decision{}, false
}
