package domain

import (
	"fmt"
	"time"
)

// TokenKind classifies a run of characters produced by the natural tokenizer.
type TokenKind uint8

const (
	KindOther TokenKind = iota
	KindDigits
)

func (k TokenKind) String() string {
	switch k {
	case KindDigits:
		return "digits"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// MarshalText lets tokens render as "digits"/"other" in JSON and YAML output.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TokenKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "digits":
		*k = KindDigits
	case "other":
		*k = KindOther
	default:
		return fmt.Errorf("unknown token kind %q", b)
	}
	return nil
}

// Token is a maximal, non-empty run of ASCII digits or of non-digits.
type Token struct {
	Text string    `json:"text" yaml:"text"`
	Kind TokenKind `json:"kind" yaml:"kind"`
}

func (t Token) String() string {
	return fmt.Sprintf("(%q, %s)", t.Text, t.Kind)
}

// Date is a plain year/month/day triple. It carries no calendar rules.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// KeyRecord is the stored natural key of one scanned file.
type KeyRecord struct {
	ID      string
	Path    string
	Name    string
	ModTime time.Time
	Tokens  []Token
	Date    Date
}

type ScanStats struct {
	TotalFiles int
	LastScan   time.Time
}
