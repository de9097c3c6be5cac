// Package render prints filing indexes and holdings reports for humans and
// for jq.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/omniallc/edgar13f/client/infotable"
	"github.com/omniallc/edgar13f/holdings"
)

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

type Printer struct {
	w    io.Writer
	json bool
}

func (self *Printer) WithJSON(enabled bool) *Printer {
	self.json = enabled
	return self
}

type jsonFiling struct {
	Accession  string `json:"accession"`
	Normalized string `json:"normalized"`
	ReportDate string `json:"reportDate"`
	Quarter    string `json:"quarter"`
}

type jsonReport struct {
	ReportDate string               `json:"reportDate"`
	Quarter    string               `json:"quarter"`
	Holdings   []infotable.Security `json:"holdings"`
}

func (self *Printer) Filings(corp holdings.Corporation) error {
	if self.json {
		filings := make([]jsonFiling, len(corp.Filings))
		for i, f := range corp.Filings {
			filings[i] = jsonFiling{
				Accession:  f.Accession(),
				Normalized: f.Normalized(),
				ReportDate: f.ReportDate().Format(time.DateOnly),
				Quarter:    f.Quarter().String(),
			}
		}
		return self.encode(struct {
			CIK     string       `json:"cik"`
			Filings []jsonFiling `json:"filings"`
		}{CIK: corp.CIK.String(), Filings: filings})
	}

	tw := self.tabWriter()
	fmt.Fprintln(tw, "QUARTER\tFILING\tACCESSION")
	for _, f := range corp.Filings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Quarter(), f, f.Accession())
	}
	return self.flush(tw)
}

// Holdings prints report newest first.
func (self *Printer) Holdings(report holdings.Report) error {
	dates := report.Dates()
	if self.json {
		reports := make([]jsonReport, len(dates))
		for i, d := range dates {
			reports[i] = jsonReport{
				ReportDate: d.Format(time.DateOnly),
				Quarter:    holdings.NewQtr(d).String(),
				Holdings:   report[d],
			}
			if reports[i].Holdings == nil {
				reports[i].Holdings = []infotable.Security{}
			}
		}
		return self.encode(reports)
	}

	tw := self.tabWriter()
	fmt.Fprintln(tw, "REPORT DATE\tCUSIP\tSHARES\tNAME")
	for _, d := range dates {
		for _, s := range report[d] {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.Format(time.DateOnly), s.CUSIP,
				s.Shares, s.Name)
		}
	}
	return self.flush(tw)
}

func (self *Printer) QuarterFilings(filings []holdings.QuarterFiling) error {
	if self.json {
		if filings == nil {
			filings = []holdings.QuarterFiling{}
		}
		return self.encode(filings)
	}

	tw := self.tabWriter()
	fmt.Fprintln(tw, "CIK\tFILED\tACCESSION\tCOMPANY")
	for _, f := range filings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.CIK, f.Filed.Format(time.DateOnly),
			f.Accession, f.CompanyName)
	}
	return self.flush(tw)
}

func (self *Printer) encode(v any) error {
	enc := json.NewEncoder(self.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (self *Printer) tabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(self.w, 0, 0, 2, ' ', 0)
}

func (self *Printer) flush(tw *tabwriter.Writer) error {
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
