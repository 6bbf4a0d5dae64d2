package weights

import "errors"

var (
	ErrNotFound     = errors.New("weight configuration not found")
	ErrNoActive     = errors.New("no active weight configuration applies to subject")
	ErrInvalidScope = errors.New("scope must be global, department or position")
)
