package port

import "time"

// DateLike is the capability a value must expose to have its date fields
// extracted. time.Time satisfies it.
type DateLike interface {
	Year() int
	Month() time.Month
	Day() int
}
