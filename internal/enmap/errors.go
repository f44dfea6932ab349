package enmap

import (
	"errors"
	"fmt"
)

// Error represents a store operation failure.
//
// Every invalid operation is reported through this type so callers can
// branch on the error code without string matching:
//   - Duplicate name on Add/Ensure
//   - Missing name or id on fetch/delete/override
//   - Missing or unspecified key on SetValue
//   - Persistence used on a store that was never configured for it
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Name is the offending entry name (for name-keyed operations).
	Name string

	// ID is the offending entry id (for id-keyed operations).
	ID int64

	// Key is the offending data key (for SetValue errors).
	Key string

	// Store is the name of the store the operation targeted.
	Store string

	// Action is the attempted action (for non-persistent errors).
	Action string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeNameDuplication indicates Add/Ensure was called with a name that already exists.
	ErrCodeNameDuplication ErrorCode = "NAME_DUPLICATION"

	// ErrCodeNameNotFound indicates a name-keyed operation referenced an absent name.
	ErrCodeNameNotFound ErrorCode = "NAME_NOT_FOUND"

	// ErrCodeIDNotFound indicates an id-keyed operation referenced an absent id.
	ErrCodeIDNotFound ErrorCode = "ID_NOT_FOUND"

	// ErrCodeKeyUndefined indicates SetValue on structured data without a key.
	ErrCodeKeyUndefined ErrorCode = "KEY_UNDEFINED"

	// ErrCodeInvalidKey indicates SetValue referenced a key absent from the data.
	ErrCodeInvalidKey ErrorCode = "INVALID_KEY"

	// ErrCodeNonPersistent indicates a persistence operation on a store without a mirror.
	ErrCodeNonPersistent ErrorCode = "NON_PERSISTENT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNameDuplication:
		return fmt.Sprintf("%s: name %q already exists", e.Code, e.Name)
	case ErrCodeNameNotFound:
		return fmt.Sprintf("%s: name %q not found", e.Code, e.Name)
	case ErrCodeIDNotFound:
		return fmt.Sprintf("%s: id %d not found", e.Code, e.ID)
	case ErrCodeKeyUndefined:
		return fmt.Sprintf("%s: no key specified for structured value", e.Code)
	case ErrCodeInvalidKey:
		return fmt.Sprintf("%s: key %q does not exist in store %q", e.Code, e.Key, e.Store)
	case ErrCodeNonPersistent:
		return fmt.Sprintf("%s: store %q is not persistent, cannot be %s", e.Code, e.Store, e.Action)
	}
	return fmt.Sprintf("%s: store %q", e.Code, e.Store)
}

// NewNameDuplicationError creates an Error for a duplicate name.
func NewNameDuplicationError(name string) *Error {
	return &Error{Code: ErrCodeNameDuplication, Name: name}
}

// NewNameNotFoundError creates an Error for a missing name.
func NewNameNotFoundError(name string) *Error {
	return &Error{Code: ErrCodeNameNotFound, Name: name}
}

// NewIDNotFoundError creates an Error for a missing id.
func NewIDNotFoundError(id int64) *Error {
	return &Error{Code: ErrCodeIDNotFound, ID: id}
}

// NewKeyUndefinedError creates an Error for SetValue without a key.
func NewKeyUndefinedError() *Error {
	return &Error{Code: ErrCodeKeyUndefined}
}

// NewInvalidKeyError creates an Error for a key absent from structured data.
func NewInvalidKeyError(key, store string) *Error {
	return &Error{Code: ErrCodeInvalidKey, Key: key, Store: store}
}

// NewNonPersistentError creates an Error for a persistence operation on a
// store without a mirror. action names the attempted operation, e.g.
// "initiated" or "closed".
func NewNonPersistentError(store, action string) *Error {
	return &Error{Code: ErrCodeNonPersistent, Store: store, Action: action}
}

// IsNameDuplication returns true if the error is a duplicate-name error.
// Uses errors.As to handle wrapped errors.
func IsNameDuplication(err error) bool { return hasCode(err, ErrCodeNameDuplication) }

// IsNameNotFound returns true if the error is a missing-name error.
func IsNameNotFound(err error) bool { return hasCode(err, ErrCodeNameNotFound) }

// IsIDNotFound returns true if the error is a missing-id error.
func IsIDNotFound(err error) bool { return hasCode(err, ErrCodeIDNotFound) }

// IsKeyUndefined returns true if the error is a missing-key-argument error.
func IsKeyUndefined(err error) bool { return hasCode(err, ErrCodeKeyUndefined) }

// IsInvalidKey returns true if the error is an absent-data-key error.
func IsInvalidKey(err error) bool { return hasCode(err, ErrCodeInvalidKey) }

// IsNonPersistent returns true if the error is a non-persistent-store error.
func IsNonPersistent(err error) bool { return hasCode(err, ErrCodeNonPersistent) }

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
