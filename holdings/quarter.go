package holdings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func NewQtr(date time.Time) Qtr {
	y, m, _ := date.Date()
	return Qtr{year: y, qtr: monthQtr(int(m))}
}

// ParseQtr parses quarter in "2024/QTR1" form, like String returns it.
func ParseQtr(s string) (Qtr, error) {
	year, qtr, ok := strings.Cut(s, "/QTR")
	if !ok {
		return Qtr{}, fmt.Errorf("failed parse %q as quarter: want YYYY/QTRn", s)
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 1993 {
		return Qtr{}, fmt.Errorf("failed parse %q as quarter: bad year %q", s, year)
	}

	q, err := strconv.Atoi(qtr)
	if err != nil || q < 1 || q > 4 {
		return Qtr{}, fmt.Errorf("failed parse %q as quarter: bad QTR %q", s, qtr)
	}
	return Qtr{year: y, qtr: q}, nil
}

// Qtr is a calendar quarter. 13F-HR report dates are quarter ends.
type Qtr struct {
	year, qtr int
}

func monthQtr(month int) int {
	if month%3 > 0 {
		return month/3 + 1
	}
	return month / 3
}

func (self Qtr) String() string {
	return strconv.Itoa(self.year) + "/" + self.QTR()
}

func (self Qtr) Year() int { return self.year }

func (self Qtr) QTR() string {
	return "QTR" + strconv.Itoa(self.qtr)
}
