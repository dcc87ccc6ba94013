package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotDateLike   = errors.New("value is not date-like")
	ErrInvalidField  = errors.New("invalid date field")
	ErrRecordMissing = errors.New("key record not found")
)

// CapabilityError reports a value that cannot be decomposed into date fields.
type CapabilityError struct {
	Field Field
	Type  string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("extract %s from %s: %v", e.Field, e.Type, ErrNotDateLike)
}

func (e *CapabilityError) Unwrap() error { return ErrNotDateLike }

// InvalidFieldError reports a selector outside year/month/day.
type InvalidFieldError struct {
	Input string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%v: %q (want year, month or day)", ErrInvalidField, e.Input)
}

func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }
