package bonus

import "errors"

var (
	ErrPolicyNotFound    = errors.New("bonus policy not found")
	ErrPolicyNotApproved = errors.New("bonus policy is not approved")
	ErrInvalidBand       = errors.New("bonus bands must have non-negative floors and percentages")
)
