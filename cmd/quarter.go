package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omniallc/edgar13f/cmd/internal/common"
	"github.com/omniallc/edgar13f/cmd/internal/render"
	"github.com/omniallc/edgar13f/holdings"
)

var (
	quarterJSON bool

	quarterCmd = cobra.Command{
		Use:   "quarter YYYY/QTRn",
		Short: "List 13F-HR filings EDGAR received during a quarter",
		Long: `Reads EDGAR's full-index master file of the quarter and lists every
13F-HR filing from it. CIK of any listed filer can be passed to holdings.`,
		Example: `
  - List 13F-HR filings received during the first quarter of 2024:

    $ edgar13f quarter 2024/QTR1`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			qtr, err := holdings.ParseQtr(args[0])
			cobra.CheckErr(err)
			fetcher, err := common.NewFetcher()
			cobra.CheckErr(err)
			filings, err := fetcher.QuarterFilings(cmd.Context(), qtr)
			cobra.CheckErr(err)
			cobra.CheckErr(render.NewPrinter(cmd.OutOrStdout()).
				WithJSON(quarterJSON).QuarterFilings(filings))
		},
	}
)

func init() {
	rootCmd.AddCommand(&quarterCmd)
	quarterCmd.Flags().BoolVar(&quarterJSON, "json", false, "print JSON")
}
