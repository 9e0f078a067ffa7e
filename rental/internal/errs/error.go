package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrUserName = errors.New("username is required")
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindIntegrity
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindIntegrity:
		return "integrity"
	case KindInfrastructure:
		return "infrastructure"
	}
	return "unknown"
}

// Reason codes of business rule failures.
const (
	ReasonAccountNotFound    = "account_not_found"
	ReasonAccountInactive    = "account_inactive"
	ReasonAccountActive      = "account_already_active"
	ReasonNameMismatch       = "name_mismatch"
	ReasonBadCredentials     = "invalid_credentials"
	ReasonWeakPassword       = "weak_password"
	ReasonExistingRental     = "existing_rental"
	ReasonStationNotFound    = "station_not_found"
	ReasonStationOffline     = "station_offline"
	ReasonSlotOutOfRange     = "slot_out_of_range"
	ReasonSlotEmpty          = "slot_empty"
	ReasonGearUnavailable    = "gear_unavailable"
	ReasonInsufficientCredit = "insufficient_credit"
	ReasonGearNotFound       = "gear_not_found"
	ReasonSlotOccupied       = "slot_occupied"
	ReasonSlotBroken         = "slot_broken"
	ReasonWrongReturnZone    = "wrong_return_zone"
	ReasonNoOpenRental       = "no_open_rental"
	ReasonGearMismatch       = "gear_mismatch"
	ReasonGearBorrowed       = "gear_borrowed"
	ReasonInvalidStatus      = "invalid_status"
)

const (
	msgConflict       = "the kiosk is busy, please try again"
	msgIntegrity      = "internal error, please contact the service desk"
	msgInfrastructure = "service temporarily unavailable, please try again"
)

type Error struct {
	Kind      Kind
	Reason    string
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(reason, msg string) *Error {
	return &Error{Kind: KindValidation, Reason: reason, Message: msg}
}

func Conflict(cause error) *Error {
	return &Error{Kind: KindConflict, Message: msgConflict, Retryable: true, Err: cause}
}

// Integrity reports a broken invariant. msg goes to the log, never to the user.
func Integrity(msg string, cause error) *Error {
	if cause == nil {
		cause = errors.New(msg)
	} else {
		cause = fmt.Errorf("%s: %w", msg, cause)
	}
	return &Error{Kind: KindIntegrity, Message: msgIntegrity, Err: cause}
}

func Infrastructure(cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msgInfrastructure, Err: cause}
}

// Timeout is an infrastructure failure the caller may retry.
func Timeout(cause error) *Error {
	e := Infrastructure(cause)
	e.Retryable = true
	return e
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInfrastructure
}

func ReasonOf(err error) string {
	if e, ok := As(err); ok {
		return e.Reason
	}
	return ""
}

// UserMessage is the text safe to show at the kiosk.
func UserMessage(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return msgInfrastructure
}

func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable
}
