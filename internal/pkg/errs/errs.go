package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
	ErrAlreadyTaken      = errors.New("already taken")
	ErrNotOwner          = errors.New("not owner")
	ErrAlreadyFinished   = errors.New("already finished")
	ErrDuplicateDocument = errors.New("duplicate document")
	ErrForbidden         = errors.New("forbidden")
)

// ObjectNotFoundError is returned when a referenced entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError is returned when an operation is not allowed in the current state.
type InvalidStateError struct {
	Operation string
	State     string
}

func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, State: state}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s in status %s", ErrInvalidState, e.Operation, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError is returned when a concurrent writer got there first.
type ConflictError struct {
	Resource string
	ID       any
	Cause    error
}

func NewConflictError(resource string, id any) *ConflictError {
	return &ConflictError{Resource: resource, ID: id}
}

func NewConflictErrorWithCause(resource string, id any, cause error) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrConflict, e.Resource, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.Resource, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AlreadyTakenError is returned when a pooled order is no longer available.
// It matches both ErrAlreadyTaken and ErrConflict.
type AlreadyTakenError struct {
	OrderID any
}

func NewAlreadyTakenError(orderID any) *AlreadyTakenError {
	return &AlreadyTakenError{OrderID: orderID}
}

func (e *AlreadyTakenError) Error() string {
	return fmt.Sprintf("%s: order %s is no longer in the open pool", ErrAlreadyTaken, e.OrderID)
}

func (e *AlreadyTakenError) Unwrap() []error {
	return []error{ErrAlreadyTaken, ErrConflict}
}

// NotOwnerError is returned when the calling company does not hold the order.
type NotOwnerError struct {
	OrderID   any
	CompanyID any
}

func NewNotOwnerError(orderID, companyID any) *NotOwnerError {
	return &NotOwnerError{OrderID: orderID, CompanyID: companyID}
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("%s: company %s does not hold order %s", ErrNotOwner, e.CompanyID, e.OrderID)
}

func (e *NotOwnerError) Unwrap() error {
	return ErrNotOwner
}

type AlreadyFinishedError struct {
	OrderID any
}

func NewAlreadyFinishedError(orderID any) *AlreadyFinishedError {
	return &AlreadyFinishedError{OrderID: orderID}
}

func (e *AlreadyFinishedError) Error() string {
	return fmt.Sprintf("%s: order %s", ErrAlreadyFinished, e.OrderID)
}

func (e *AlreadyFinishedError) Unwrap() error {
	return ErrAlreadyFinished
}

// DuplicateDocumentError is returned when uploaded content hashes to an existing document.
type DuplicateDocumentError struct {
	SHA256 string
	Cause  error
}

func NewDuplicateDocumentError(sha256 string) *DuplicateDocumentError {
	return &DuplicateDocumentError{SHA256: sha256}
}

func NewDuplicateDocumentErrorWithCause(sha256 string, cause error) *DuplicateDocumentError {
	return &DuplicateDocumentError{SHA256: sha256, Cause: cause}
}

func (e *DuplicateDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: sha256 %s (cause: %v)", ErrDuplicateDocument, e.SHA256, e.Cause)
	}
	return fmt.Sprintf("%s: sha256 %s", ErrDuplicateDocument, e.SHA256)
}

func (e *DuplicateDocumentError) Unwrap() error {
	return ErrDuplicateDocument
}

// ForbiddenError is returned when the actor may not perform the action at all.
type ForbiddenError struct {
	Action string
}

func NewForbiddenError(action string) *ForbiddenError {
	return &ForbiddenError{Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// Kind values returned by KindOf.
const (
	KindNotFound          = "not_found"
	KindInvalidValue      = "invalid_value"
	KindInvalidState      = "invalid_state"
	KindConflict          = "conflict"
	KindAlreadyTaken      = "already_taken"
	KindNotOwner          = "not_owner"
	KindAlreadyFinished   = "already_finished"
	KindDuplicateDocument = "duplicate_document"
	KindForbidden         = "forbidden"
	KindInternal          = "internal"
)

// KindOf classifies err into a stable kind string. Order matters: AlreadyTaken
// is checked before Conflict because it matches both.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyTaken):
		return KindAlreadyTaken
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotOwner):
		return KindNotOwner
	case errors.Is(err, ErrAlreadyFinished):
		return KindAlreadyFinished
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrDuplicateDocument):
		return KindDuplicateDocument
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidValue
	default:
		return KindInternal
	}
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", ""), "\n", " ")
}
