package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omniallc/edgar13f/cmd/internal/common"
	"github.com/omniallc/edgar13f/cmd/internal/render"
	"github.com/omniallc/edgar13f/holdings"
)

var (
	holdingsOffset int
	holdingsLimit  int
	holdingsProcs  int
	holdingsJSON   bool

	holdingsCmd = cobra.Command{
		Use:   "holdings CIK",
		Short: "Print securities reported by recent 13F-HR filings of CIK",
		Example: `
  - Print holdings from 4 most recent 13F-HR filings of Berkshire Hathaway:

    $ edgar13f holdings 1067983 --limit 4

  - Skip the latest filing and fetch next 10 of them, 2 at once:

    $ edgar13f holdings 1067983 --offset 1 --procs 2 --json`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cik, err := holdings.ParseCIK(args[0])
			cobra.CheckErr(err)
			fetcher, err := common.NewFetcher()
			cobra.CheckErr(err)
			report, err := fetcher.WithProcsLimit(holdingsProcs).
				RecentHoldings(cmd.Context(), cik, holdingsOffset, holdingsLimit)
			cobra.CheckErr(err)
			cobra.CheckErr(render.NewPrinter(cmd.OutOrStdout()).
				WithJSON(holdingsJSON).Holdings(report))
		},
	}
)

func init() {
	rootCmd.AddCommand(&holdingsCmd)
	holdingsCmd.Flags().IntVar(&holdingsOffset, "offset", 0,
		"skip this many most recent filings")
	holdingsCmd.Flags().IntVar(&holdingsLimit, "limit", holdings.DefaultLimit,
		"fetch up to this many filings")
	holdingsCmd.Flags().IntVar(&holdingsProcs, "procs", 1,
		"fetch up to this many filings at once")
	holdingsCmd.Flags().BoolVar(&holdingsJSON, "json", false, "print JSON")
}
