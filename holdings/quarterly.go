package holdings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/omniallc/edgar13f/client/index"
)

const (
	fullIndexURI = "Archives/edgar/full-index"
	masterIndex  = "master.idx"
)

// QuarterFiling is a 13F-HR filing listed by the full index of a quarter.
type QuarterFiling struct {
	CIK         CIK       `json:"cik"`
	CompanyName string    `json:"companyName"`
	Accession   string    `json:"accession"`
	Filed       time.Time `json:"filed"`
}

func (self *Fetcher) masterIndexURL(qtr Qtr) (string, error) {
	return self.clients.Archives.URL(fullIndexURI, strconv.Itoa(qtr.Year()),
		qtr.QTR(), masterIndex)
}

// QuarterFilings returns 13F-HR filings received by EDGAR during qtr, in the
// order of its master index. Unlike FilingIndex it finds every filer of the
// quarter, not the filings of a known CIK.
func (self *Fetcher) QuarterFilings(ctx context.Context, qtr Qtr,
) ([]QuarterFiling, error) {
	url, err := self.masterIndexURL(qtr)
	if err != nil {
		return nil, err
	}

	l := self.log(ctx).With(slog.String("quarter", qtr.String()))
	l.Info("fetch master index")

	resp, err := self.clients.Archives.GetStream(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("master index of %v: %w", qtr, err)
	}
	defer resp.Body.Close()

	var filings []QuarterFiling
	r := index.NewReader(resp.Body)
	err = r.Each(func(entry index.Entry) error {
		if entry.FormType == formType {
			filings = append(filings, QuarterFiling{
				CIK:         CIK(entry.CIK),
				CompanyName: entry.CompanyName,
				Accession:   entry.Accession(),
				Filed:       entry.DateFiled,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("master index of %v: %w", qtr, err)
	}

	l.Info("got master index",
		slog.String("lastReceived", r.LastReceived().Format(time.DateOnly)),
		slog.Int("matched", len(filings)))
	return filings, nil
}
