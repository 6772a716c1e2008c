package report

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dustin/go-humanize"
)

// Fixed2 formats v with thousands separators and two decimals, rounded to
// the nearest cent: 1234.5 -> "1,234.50".
func Fixed2(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	whole, frac, ok := strings.Cut(s, ".")
	if !ok {
		return s // NaN or Inf
	}
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return s
	}
	sign := ""
	if v < 0 && s != "0.00" {
		sign = "-"
	}
	return sign + humanize.BigComma(n) + "." + frac
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Percent returns part/total as an integer-rounded percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// ISOWeekStart returns the Monday of the given ISO-8601 week.
func ISOWeekStart(year, week int) civil.Date {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	return civil.DateOf(jan4.AddDate(0, 0, (week-1)*7-sinceMonday))
}

// ISOWeekEnd returns the Sunday of the given ISO-8601 week.
func ISOWeekEnd(year, week int) civil.Date {
	return ISOWeekStart(year, week).AddDays(6)
}
