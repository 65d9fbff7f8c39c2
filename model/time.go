package model

import "time"

// TimestampLayout is fixed width so stored timestamps sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// Now returns the current UTC time formatted for storage.
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}
