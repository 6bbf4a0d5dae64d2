package workflow

import "errors"

var (
	ErrUnknownKind     = errors.New("unknown workflow kind")
	ErrInvalidState    = errors.New("subject is in a terminal or incompatible state")
	ErrNotAuthorized   = errors.New("approver role is not authorized for this stage")
	ErrCommentTooShort = errors.New("rejection comment must be at least 10 characters")
	ErrVersionConflict = errors.New("subject was modified concurrently, reload and retry")
	ErrSubjectNotFound = errors.New("workflow subject not found")
)
