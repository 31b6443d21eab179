package paykey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month is a three-letter month abbreviation, "Jan" through "Dec".
type Month string

const (
	Jan Month = "Jan"
	Feb Month = "Feb"
	Mar Month = "Mar"
	Apr Month = "Apr"
	May Month = "May"
	Jun Month = "Jun"
	Jul Month = "Jul"
	Aug Month = "Aug"
	Sep Month = "Sep"
	Oct Month = "Oct"
	Nov Month = "Nov"
	Dec Month = "Dec"
)

// Months lists every month in calendar order.
var Months = []Month{Jan, Feb, Mar, Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec}

// ErrMalformedKey is wrapped by every Parse and ParseMonth failure.
var ErrMalformedKey = errors.New("malformed payment key")

// Key identifies one month of rent: "2024-Jan".
type Key struct {
	Year  int
	Month Month
}

// Format returns a key like "2024-Jan".
func Format(year int, month Month) string {
	return fmt.Sprintf("%d-%s", year, month)
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return Format(k.Year, k.Month)
}

// ParseMonth validates a month abbreviation. Matching is case-sensitive.
func ParseMonth(s string) (Month, error) {
	for _, m := range Months {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown month %q", ErrMalformedKey, s)
}

// Index returns the zero-based calendar position of m, or -1.
func (m Month) Index() int {
	for i, mm := range Months {
		if mm == m {
			return i
		}
	}
	return -1
}

// MonthOf converts a time.Month to its abbreviation.
func MonthOf(m time.Month) Month {
	return Months[int(m)-1]
}

// Parse parses "2024-Jan" into a Key. The string is split on the first "-".
func Parse(s string) (Key, error) {
	yearStr, monthStr, ok := strings.Cut(s, "-")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, s)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		return Key{}, fmt.Errorf("%w: invalid year in %q", ErrMalformedKey, s)
	}

	month, err := ParseMonth(monthStr)
	if err != nil {
		return Key{}, fmt.Errorf("parsing %q: %w", s, err)
	}

	return Key{Year: year, Month: month}, nil
}

// Of returns the key for the month containing t.
func Of(t time.Time) Key {
	return Key{Year: t.Year(), Month: MonthOf(t.Month())}
}
