package holdings

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/omniallc/edgar13f/client/infotable"
)

const reportDateLayout = "2006-01-02"

// NewFiling builds a filing record from a raw, dash separated accession
// number like 0001067983-24-000006.
func NewFiling(accession string, reportDate time.Time) Filing {
	return Filing{
		accession:  accession,
		normalized: NormalizeAccession(accession),
		reportDate: reportDate,
	}
}

func NormalizeAccession(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}

func parseReportDate(s string) (time.Time, error) {
	t, err := time.Parse(reportDateLayout, s)
	if err != nil {
		return t, fmt.Errorf("failed parse %q as report date: %w", s, err)
	}
	return t, nil
}

type Filing struct {
	accession  string
	normalized string
	reportDate time.Time
}

func (self Filing) Accession() string { return self.accession }

func (self Filing) Normalized() string { return self.normalized }

func (self Filing) ReportDate() time.Time { return self.reportDate }

func (self Filing) Quarter() Qtr { return NewQtr(self.reportDate) }

func (self Filing) String() string {
	return self.reportDate.Format(time.DateOnly) + " -- " + self.normalized
}

type Corporation struct {
	CIK     CIK
	Filings []Filing
}

// Report maps 13F-HR report dates to the securities reported for them.
type Report map[time.Time][]infotable.Security

// Dates returns report dates, most recent first.
func (self Report) Dates() []time.Time {
	dates := make([]time.Time, 0, len(self))
	for d := range self {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return b.Compare(a) })
	return dates
}
