// Package calendar reads year, month and day fields from date-like values.
package calendar

import (
	"fmt"
	"runtime"
	"time"

	"natkey/internal/domain"
	"natkey/internal/port"
)

// Extract returns the requested field of value. Month and day are 1-indexed.
//
// A value that does not implement port.DateLike yields a
// *domain.CapabilityError. Passing a field other than FieldYear, FieldMonth
// or FieldDay is a caller bug and panics with *domain.InvalidFieldError;
// selectors from user input should go through domain.ParseField or
// domain.FieldFromCode first.
func Extract(value any, field domain.Field) (int64, error) {
	if !field.Valid() {
		panic(&domain.InvalidFieldError{Input: field.String()})
	}

	d, ok := value.(port.DateLike)
	if !ok || isNilDate(d) {
		return 0, &domain.CapabilityError{Field: field, Type: fmt.Sprintf("%T", value)}
	}

	return read(d, field)
}

// isNilDate reports typed nil pointers of the date types this module knows.
func isNilDate(d port.DateLike) bool {
	switch v := d.(type) {
	case *time.Time:
		return v == nil
	case *domain.Date:
		return v == nil
	}
	return false
}

// read calls the accessor for field. A runtime fault inside the accessor,
// such as a nil receiver of some other pointer type, means the value cannot
// be decomposed and is reported as a CapabilityError.
func read(d port.DateLike, field domain.Field) (v int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			v, err = 0, &domain.CapabilityError{Field: field, Type: fmt.Sprintf("%T", d)}
		}
	}()

	switch field {
	case domain.FieldYear:
		return int64(d.Year()), nil
	case domain.FieldMonth:
		return int64(d.Month()), nil
	default:
		return int64(d.Day()), nil
	}
}

// ExtractAll copies all three fields of value into a domain.Date.
func ExtractAll(value any) (domain.Date, error) {
	var parts [3]int64
	for i, f := range domain.Fields() {
		v, err := Extract(value, f)
		if err != nil {
			return domain.Date{}, err
		}
		parts[i] = v
	}
	return domain.NewDate(int(parts[0]), time.Month(parts[1]), int(parts[2])), nil
}
