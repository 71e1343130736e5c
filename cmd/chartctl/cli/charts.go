package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go-hr-dashboard-backend/pkg/chartclient"

	"github.com/spf13/cobra"
)

var titleLength int

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Applications per month",
	Long: `Print application counts for the most recent months, oldest first.

Examples:
  chartctl monthly --url https://api.example.com --token eyJ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := chartclient.New(serverURL, accessToken).Monthly(cmd.Context())
		if err != nil {
			return err
		}
		return printSeries(cmd.OutOrStdout(), "MONTH", chartclient.MonthlySeries(rows))
	},
}

var byJobCmd = &cobra.Command{
	Use:   "by-job",
	Short: "Applications per job",
	Long: `Print application counts for the busiest jobs, highest count first.

Examples:
  chartctl by-job --token eyJ... --title-length 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := chartclient.New(serverURL, accessToken).ByJob(cmd.Context())
		if err != nil {
			return err
		}
		return printSeries(cmd.OutOrStdout(), "JOB", chartclient.JobSeries(rows, titleLength))
	},
}

func init() {
	byJobCmd.Flags().IntVar(&titleLength, "title-length", chartclient.DefaultTitleLength, "Maximum job title length before truncation")
}

func printSeries(out io.Writer, labelHeader string, points []chartclient.Point) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(out, "No applications yet.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tAPPLICATIONS\n", labelHeader)
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%d\n", p.Label, p.Value)
	}
	return w.Flush()
}
