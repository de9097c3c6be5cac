package cmd

import (
	"fmt"
	"log/slog"
	"os"

	dotenv "github.com/dsh2dsh/expx-dotenv"
	"github.com/spf13/cobra"
)

var (
	verbose bool

	rootCmd = cobra.Command{
		Use:   "edgar13f",
		Short: "Read 13F-HR holdings reports from SEC EDGAR",
		Long: `All sub-commands require EDGAR_UA environment variable set, SEC rejects
requests without a declared User-Agent:

  EDGAR_UA="Sample Company Name AdminContact@<sample company domain>.com"

Optional EDGAR_RATE_LIMIT limits requests per second, SEC allows up to 10.
Both can be set in .env file too.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				slog.SetDefault(newVerboseLogger())
			}
			return loadEnvs()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log every fetched filing")
}

func Execute(version string) {
	rootCmd.Version = version
	cobra.CheckErr(rootCmd.Execute())
}

func loadEnvs() error {
	if err := dotenv.New().WithDepth(1).Load(); err != nil {
		return fmt.Errorf("load edgar envs: %w", err)
	}
	return nil
}

func newVerboseLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: slog.LevelDebug}))
}
