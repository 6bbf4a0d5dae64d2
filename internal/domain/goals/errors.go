package goals

import "errors"

var (
	ErrNotFound      = errors.New("goal not found")
	ErrInvalidWeight = errors.New("goal weight must be a positive integer")
	ErrInvalidTarget = errors.New("goal target value must be positive")
)
