package authz

// Reason categorizes a denial so callers can render an actionable
// error instead of a generic 403.
type Reason string

const (
	ReasonNotAuthenticated       Reason = "NOT_AUTHENTICATED"
	ReasonRoleInsufficient       Reason = "ROLE_INSUFFICIENT"
	ReasonOutOfScope             Reason = "OUT_OF_SCOPE"
	ReasonInvalidStateTransition Reason = "INVALID_STATE_TRANSITION"
	ReasonAlreadyInTargetState   Reason = "ALREADY_IN_TARGET_STATE"
	ReasonConflict               Reason = "CONFLICT"
	ReasonNotFound               Reason = "NOT_FOUND"
)

// Decision is the result of a policy check. Ordinary denials are values,
// not errors; only infrastructure failures (store lookups) surface as errors.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
