// Package apperr defines the error kinds that operations surface to callers.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindForbidden
	KindNotFound
	KindUnauthenticated
	KindDuplicateAction
	KindMissingAction
)

// Error is a recoverable failure that is translated into a response at the boundary.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindDuplicateAction, KindMissingAction:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrEmailTaken         = &Error{Kind: KindConflict, Code: "email_taken", Message: "Email already exists"}
	ErrHandleTaken        = &Error{Kind: KindConflict, Code: "handle_taken", Message: "That handle already exists"}
	ErrForbidden          = &Error{Kind: KindForbidden, Code: "not_authorized", Message: "User not authorized"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Code: "unauthenticated", Message: "Authentication required"}
	ErrBadPassword        = &Error{Kind: KindUnauthenticated, Code: "bad_password", Message: "Password incorrect"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Code: "user_not_found", Message: "User not found"}
	ErrProfileNotFound    = &Error{Kind: KindNotFound, Code: "profile_not_found", Message: "There is no profile for this user"}
	ErrPostNotFound       = &Error{Kind: KindNotFound, Code: "post_not_found", Message: "No post found with that ID"}
	ErrCommentNotFound    = &Error{Kind: KindNotFound, Code: "comment_not_found", Message: "Comment does not exist"}
	ErrExperienceNotFound = &Error{Kind: KindNotFound, Code: "experience_not_found", Message: "Experience entry does not exist"}
	ErrEducationNotFound  = &Error{Kind: KindNotFound, Code: "education_not_found", Message: "Education entry does not exist"}
	ErrAlreadyLiked       = &Error{Kind: KindDuplicateAction, Code: "already_liked", Message: "User already liked this post"}
	ErrNotLiked           = &Error{Kind: KindMissingAction, Code: "not_liked", Message: "You have not yet liked this post"}
)

// Validation builds a field-level validation failure.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    "validation_failed",
		Message: "Request validation failed",
		Fields:  fields,
	}
}

// As returns the *Error carried by err, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err; unknown errors are internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
