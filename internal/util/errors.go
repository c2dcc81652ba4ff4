package util

import "errors"

// ErrorKind classifies domain failures so the HTTP layer can map them to a
// status code without string matching.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindInvalidState ErrorKind = "invalid_state"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal"
)

type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func ValidationErr(msg string) error {
	return &DomainError{Kind: KindValidation, Message: msg}
}

func InvalidState(msg string) error {
	return &DomainError{Kind: KindInvalidState, Message: msg}
}

func NotFoundErr(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func ConflictErr(msg string) error {
	return &DomainError{Kind: KindConflict, Message: msg}
}

// KindOf returns the kind of a domain error, or KindInternal for anything
// that did not originate in the domain layer.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrAssessmentNotFound = NotFoundErr("assessment not found")
	ErrQuestionNotFound   = NotFoundErr("question not found")
	ErrSubmissionNotFound = NotFoundErr("submission not found")
	ErrAlreadyGraded      = ConflictErr("submission was already graded")
	ErrRetakeNotAllowed   = ConflictErr("retakes are not allowed for this assessment")
	ErrAssessmentArchived = InvalidState("assessment is archived")
	ErrInvalidCredentials = ValidationErr("invalid email or password")
)
