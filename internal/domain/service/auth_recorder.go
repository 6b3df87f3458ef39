package service

import "time"

// Authentication outcomes reported to the AuthRecorder.
const (
	OutcomeFound         = "found"
	OutcomeCreated       = "created"
	OutcomeInvalidShape  = "invalid_shape"
	OutcomeWrongPassword = "wrong_password"
	OutcomeInactive      = "inactive"
	OutcomeError         = "error"

	TokenOutcomeValid       = "valid"
	TokenOutcomeRejected    = "rejected"
	TokenOutcomeAccountGone = "account_gone"
)

// AuthRecorder receives authentication telemetry.
type AuthRecorder interface {
	RecordAuthentication(outcome string, elapsed time.Duration)
	RecordTokenCheck(outcome string)
}
