package core

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors – exported so callers can compare with errors.Is()
// ---------------------------------------------------------------------------
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidParameter = errors.New("invalid parameter")

	ErrEmptyInput   = fmt.Errorf("%w: input is empty", ErrInsufficientData)
	ErrAllValuesNaN = fmt.Errorf("%w: all input values are NaN", ErrInsufficientData)
	ErrInvalidPrice = fmt.Errorf("%w: price must be finite", ErrInvalidParameter)
)

// InsufficientDataError reports a series shorter than an indicator requires.
type InsufficientDataError struct {
	Indicator string
	Needed    int
	Found     int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: not enough data: need %d, have %d", e.Indicator, e.Needed, e.Found)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// ParamError reports a configuration value rejected before computation.
type ParamError struct {
	Indicator string
	Param     string
	Value     any
	Reason    string
}

func (e *ParamError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: invalid %s: %v", e.Indicator, e.Param, e.Value)
	}
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Indicator, e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }
