package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrServiceUnavailable = errors.New("authentication service unavailable")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	ErrInvalidInput         = errors.New("invalid input")
	ErrDisbursementNotFound = errors.New("disbursement not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrRecordImmutable      = errors.New("record is no longer editable")
	ErrRuleNotFound         = errors.New("classification rule not found")
)
