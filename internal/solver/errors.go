package solver

import "errors"

var (
	// ErrInvalidInput is returned for a negative capacity or a negative item cost.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProblemTooLarge is returned when the DP table would exceed the configured cell limit.
	ErrProblemTooLarge = errors.New("problem exceeds table cell limit")
)
