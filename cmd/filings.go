package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omniallc/edgar13f/cmd/internal/common"
	"github.com/omniallc/edgar13f/cmd/internal/render"
	"github.com/omniallc/edgar13f/holdings"
)

var (
	filingsJSON bool

	filingsCmd = cobra.Command{
		Use:   "filings CIK",
		Short: "List 13F-HR filings of CIK, most recent first",
		Example: `
  - List 13F-HR filings of Berkshire Hathaway:

    $ edgar13f filings 1067983`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cik, err := holdings.ParseCIK(args[0])
			cobra.CheckErr(err)
			fetcher, err := common.NewFetcher()
			cobra.CheckErr(err)
			corp, err := fetcher.FilingIndex(cmd.Context(), cik)
			cobra.CheckErr(err)
			cobra.CheckErr(render.NewPrinter(cmd.OutOrStdout()).
				WithJSON(filingsJSON).Filings(corp))
		},
	}
)

func init() {
	rootCmd.AddCommand(&filingsCmd)
	filingsCmd.Flags().BoolVar(&filingsJSON, "json", false, "print JSON")
}
