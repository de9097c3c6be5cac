package holdings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/omniallc/edgar13f/client/infotable"
)

const (
	formType = "13F-HR"

	// DefaultLimit is how many recent filings RecentHoldings is usually
	// asked for.
	DefaultLimit = 10

	submissionsURI = "submissions"
	archivesURI    = "Archives/edgar/data"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrMisalignedIndex = errors.New("filings arrays differ in length")
	ErrInvalidWindow   = errors.New("invalid filings window")
)

type loggerCtxKey struct{}

// ContextWithLogger returns ctx with a logger which Fetcher prefers over its
// own one.
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

func New(clients Clients) *Fetcher {
	return &Fetcher{
		clients: clients,
		logger:  slog.Default(),
		procs:   1,
	}
}

type Fetcher struct {
	clients Clients
	logger  *slog.Logger
	procs   int
}

func (self *Fetcher) WithLogger(l *slog.Logger) *Fetcher {
	self.logger = l
	return self
}

// WithProcsLimit sets how many filings RecentHoldings fetches at once.
func (self *Fetcher) WithProcsLimit(n int) *Fetcher {
	self.procs = max(n, 1)
	return self
}

func (self *Fetcher) log(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return l
	}
	return self.logger
}

// --------------------------------------------------

type submissions struct {
	CIK     *CIK `json:"cik"`
	Filings *struct {
		Recent *recentFilings `json:"recent"`
	} `json:"filings"`
}

type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	Form            []string `json:"form"`
	ReportDate      []string `json:"reportDate"`
}

func (self *submissions) recent() (*recentFilings, error) {
	switch {
	case self.CIK == nil:
		return nil, fmt.Errorf("%w: cik", ErrMissingField)
	case self.Filings == nil:
		return nil, fmt.Errorf("%w: filings", ErrMissingField)
	case self.Filings.Recent == nil:
		return nil, fmt.Errorf("%w: filings.recent", ErrMissingField)
	}
	return self.Filings.Recent, self.Filings.Recent.validate()
}

func (self *recentFilings) validate() error {
	switch {
	case self.Form == nil:
		return fmt.Errorf("%w: filings.recent.form", ErrMissingField)
	case self.AccessionNumber == nil:
		return fmt.Errorf("%w: filings.recent.accessionNumber", ErrMissingField)
	case self.ReportDate == nil:
		return fmt.Errorf("%w: filings.recent.reportDate", ErrMissingField)
	case len(self.AccessionNumber) != len(self.Form),
		len(self.ReportDate) != len(self.Form):
		return fmt.Errorf("%w: form=%d, accessionNumber=%d, reportDate=%d",
			ErrMisalignedIndex, len(self.Form), len(self.AccessionNumber),
			len(self.ReportDate))
	}
	return nil
}

func (self *Fetcher) submissionsURL(cik CIK) (string, error) {
	return self.clients.Submissions.URL(submissionsURI,
		"CIK"+cik.Padded()+".json")
}

// FilingIndex fetches submissions of cik and returns its 13F-HR filings in
// the order EDGAR lists them.
func (self *Fetcher) FilingIndex(ctx context.Context, cik CIK,
) (corp Corporation, err error) {
	url, err := self.submissionsURL(cik)
	if err != nil {
		return
	}

	var subs submissions
	if err = self.clients.Submissions.GetJSON(ctx, url, &subs); err != nil {
		err = fmt.Errorf("submissions of CIK=%v: %w", cik, err)
		return
	}

	recent, err := subs.recent()
	if err != nil {
		err = fmt.Errorf("submissions of CIK=%v: %w", cik, err)
		return
	}

	corp.CIK = *subs.CIK
	for i, form := range recent.Form {
		if form != formType {
			continue
		}
		reportDate, err := parseReportDate(recent.ReportDate[i])
		if err != nil {
			return Corporation{}, fmt.Errorf("submissions of CIK=%v, %v: %w",
				cik, recent.AccessionNumber[i], err)
		}
		corp.Filings = append(corp.Filings,
			NewFiling(recent.AccessionNumber[i], reportDate))
	}

	self.log(ctx).Info("got filing index", slog.String("cik", corp.CIK.String()),
		slog.Int("filings", len(recent.Form)), slog.Int("matched", len(corp.Filings)))
	return
}

func (self *Fetcher) filingURL(cik CIK, filing Filing) (string, error) {
	return self.clients.Archives.URL(archivesURI, cik.String(),
		filing.Normalized(), filing.Accession()+".txt")
}

// Holdings fetches full text submission of filing and parses securities
// from its information table.
func (self *Fetcher) Holdings(ctx context.Context, cik CIK, filing Filing,
) ([]infotable.Security, error) {
	url, err := self.filingURL(cik, filing)
	if err != nil {
		return nil, err
	}

	text, err := self.clients.Archives.GetText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("filing %v of CIK=%v: %w", filing.Accession(), cik, err)
	}

	securities, err := infotable.ParseText(text)
	if err != nil {
		return nil, fmt.Errorf("filing %v of CIK=%v: %w", filing.Accession(), cik, err)
	}

	self.log(ctx).Debug("got holdings",
		slog.String("accession", filing.Accession()),
		slog.String("reportDate", filing.ReportDate().Format(reportDateLayout)),
		slog.Int("holdings", len(securities)))
	return securities, nil
}

// RecentHoldings returns holdings of filings[offset:offset+limit] of cik,
// keyed by report date. A later filing replaces an earlier one with the same
// report date.
func (self *Fetcher) RecentHoldings(ctx context.Context, cik CIK,
	offset, limit int,
) (Report, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset=%d, limit=%d", ErrInvalidWindow,
			offset, limit)
	}

	corp, err := self.FilingIndex(ctx, cik)
	if err != nil {
		return nil, err
	}
	filings := window(corp.Filings, offset, limit)

	results, err := self.fetchAll(ctx, corp.CIK, filings)
	if err != nil {
		return nil, err
	}

	report := make(Report, len(filings))
	for i, filing := range filings {
		report[filing.ReportDate()] = results[i]
	}
	return report, nil
}

func window(filings []Filing, offset, limit int) []Filing {
	start := min(offset, len(filings))
	return filings[start : start+min(limit, len(filings)-start)]
}

func (self *Fetcher) fetchAll(ctx context.Context, cik CIK, filings []Filing,
) ([][]infotable.Security, error) {
	results := make([][]infotable.Security, len(filings))

	if self.procs <= 1 {
		for i, filing := range filings {
			securities, err := self.Holdings(ctx, cik, filing)
			if err != nil {
				return nil, err
			}
			results[i] = securities
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(self.procs)
	for i, filing := range filings {
		i, filing := i, filing
		g.Go(func() error {
			securities, err := self.Holdings(ctx, cik, filing)
			if err != nil {
				return err
			}
			results[i] = securities
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("holdings of CIK=%v: %w", cik, err)
	}
	return results, nil
}
