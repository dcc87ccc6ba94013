package calendar

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"natkey/internal/domain"
)

func TestExtract_Fields(t *testing.T) {
	values := map[string]any{
		"domain.Date": domain.NewDate(2024, time.March, 15),
		"time.Time":   time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC),
		"*time.Time":  ptr(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)),
	}
	want := map[domain.Field]int64{
		domain.FieldYear:  2024,
		domain.FieldMonth: 3,
		domain.FieldDay:   15,
	}

	for name, v := range values {
		for field, expected := range want {
			got, err := Extract(v, field)
			if err != nil {
				t.Fatalf("%s/%s: unexpected error: %v", name, field, err)
			}
			if got != expected {
				t.Errorf("%s/%s: expected %d, got %d", name, field, expected, got)
			}
		}
	}
}

func TestExtract_LastDayOfYear(t *testing.T) {
	got, err := Extract(domain.NewDate(1999, time.December, 31), domain.FieldDay)
	if err != nil {
		t.Fatal(err)
	}
	if got != 31 {
		t.Errorf("expected 31, got %d", got)
	}
}

func TestExtract_NegativeYear(t *testing.T) {
	got, err := Extract(domain.NewDate(-44, time.March, 15), domain.FieldYear)
	if err != nil {
		t.Fatal(err)
	}
	if got != -44 {
		t.Errorf("expected -44, got %d", got)
	}
}

func TestExtract_NotDateLike(t *testing.T) {
	values := []any{
		nil, "2024-03-15", 20240315, struct{ Year int }{2024},
		(*time.Time)(nil), (*domain.Date)(nil), (*pointerDate)(nil),
	}

	for _, v := range values {
		for _, field := range domain.Fields() {
			got, err := Extract(v, field)
			if err == nil {
				t.Fatalf("%T/%s: expected error, got %d", v, field, got)
			}
			if got != 0 {
				t.Errorf("%T/%s: expected zero alongside error, got %d", v, field, got)
			}
			if !errors.Is(err, domain.ErrNotDateLike) {
				t.Errorf("%T/%s: expected ErrNotDateLike, got %v", v, field, err)
			}
			var capErr *domain.CapabilityError
			if !errors.As(err, &capErr) {
				t.Fatalf("%T/%s: expected *CapabilityError, got %T", v, field, err)
			}
			if capErr.Field != field {
				t.Errorf("expected field %s in error, got %s", field, capErr.Field)
			}
		}
	}
}

func TestExtract_InvalidFieldPanics(t *testing.T) {
	for _, f := range []domain.Field{0, 4, 255} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("Field(%d): expected panic", uint8(f))
					return
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, domain.ErrInvalidField) {
					t.Errorf("Field(%d): expected InvalidFieldError panic, got %v", uint8(f), r)
				}
			}()
			Extract(domain.NewDate(2024, time.March, 15), f)
		}()
	}
}

func TestExtractAll(t *testing.T) {
	d, err := ExtractAll(time.Date(2023, time.October, 5, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if d != domain.NewDate(2023, time.October, 5) {
		t.Errorf("expected 2023-10-05, got %s", d)
	}

	if _, err := ExtractAll(42); !errors.Is(err, domain.ErrNotDateLike) {
		t.Errorf("expected ErrNotDateLike, got %v", err)
	}
}

func TestExtract_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := domain.NewDate(2024, time.February, 29)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v, err := Extract(d, domain.FieldDay); err != nil || v != 29 {
					t.Errorf("expected 29, got %d (%v)", v, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestExtract_AccessorPanicPropagates(t *testing.T) {
	defer func() {
		if r := recover(); r != "broken" {
			t.Errorf("expected non-runtime panic to propagate, got %v", r)
		}
	}()
	Extract(panickyDate{}, domain.FieldYear)
}

func ptr[T any](v T) *T { return &v }

// pointerDate implements DateLike on a pointer receiver and reads its fields.
type pointerDate struct {
	y, m, d int
}

func (p *pointerDate) Year() int         { return p.y }
func (p *pointerDate) Month() time.Month { return time.Month(p.m) }
func (p *pointerDate) Day() int          { return p.d }

type panickyDate struct{}

func (panickyDate) Year() int         { panic("broken") }
func (panickyDate) Month() time.Month { return time.January }
func (panickyDate) Day() int          { return 1 }
