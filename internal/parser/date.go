package parser

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Date is a revision date as written in a :revdate: line. Field ranges are
// checked on parse; calendar validity (February 31st) is not.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// DateError reports a token that could not be parsed as a date.
type DateError struct {
	Raw string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("could not parse date '%s'", e.Raw)
}

// ParseDate parses a YYYY-MM-DD token. The token must be exactly ten
// characters with literal hyphens at offsets 4 and 7, year >= 1,
// month 1..12 and day 1..31.
func ParseDate(token string) (Date, error) {
	if len(token) != 10 || token[4] != '-' || token[7] != '-' {
		return Date{}, &DateError{Raw: token}
	}

	year, errY := strconv.ParseUint(token[0:4], 10, 16)
	month, errM := strconv.ParseUint(token[5:7], 10, 8)
	day, errD := strconv.ParseUint(token[8:10], 10, 8)
	if errY != nil || errM != nil || errD != nil {
		return Date{}, &DateError{Raw: token}
	}

	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, &DateError{Raw: token}
	}

	return Date{Year: uint16(year), Month: uint8(month), Day: uint8(day)}, nil
}

// ParseDateWithPrefix parses the remainder of line after prefix. The second
// return value is false when line does not start with prefix at all; a
// malformed date after a matching prefix is an error.
func ParseDateWithPrefix(line, prefix string) (Date, bool, error) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return Date{}, false, nil
	}
	d, err := ParseDate(rest)
	if err != nil {
		return Date{}, true, err
	}
	return d, true, nil
}

// Compare orders dates field-wise by (year, month, day). It returns a
// negative number when d is before other, zero when equal, positive after.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
