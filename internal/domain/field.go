package domain

import (
	"fmt"
	"strings"
)

// Field selects one component of a date-like value.
type Field uint8

const (
	FieldYear Field = iota + 1
	FieldMonth
	FieldDay
)

var fieldNames = map[Field]string{
	FieldYear:  "year",
	FieldMonth: "month",
	FieldDay:   "day",
}

// Fields lists every valid field in declaration order.
func Fields() []Field {
	return []Field{FieldYear, FieldMonth, FieldDay}
}

func (f Field) Valid() bool {
	_, ok := fieldNames[f]
	return ok
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// ParseField accepts a field name, case-insensitively.
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, &InvalidFieldError{Input: s}
}

// FieldFromCode maps the legacy integer selector (1=year, 2=month, 3=day).
func FieldFromCode(code int64) (Field, error) {
	if code < 1 || code > 3 {
		return 0, &InvalidFieldError{Input: fmt.Sprint(code)}
	}
	return Field(code), nil
}
