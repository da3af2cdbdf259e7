package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/LegalSpend-Research/internal/application/analytics"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// NewAnalyticsCmd creates the analytics command.
func NewAnalyticsCmd() *cobra.Command {
	var p analytics.Params
	var timeframe string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Compute a legal analytics snapshot",
		Long: "Aggregate opinions and dockets filed within the timeframe into trends, top courts,\n" +
			"a case type distribution and a citation network.  Unreachable corpora degrade the\n" +
			"snapshot instead of failing it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cliCtx.operationContext(cmd)
			defer cancel()

			p.Timeframe = research.Timeframe(timeframe)
			snap, err := cliCtx.Engine.Analytics.ComputeAnalytics(ctx, p)
			if err != nil {
				return err
			}
			return PrintResult(cmd, snap)
		},
	}

	cmd.Flags().StringVar(&p.Jurisdiction, "jurisdiction", "", "court id to scope the snapshot to")
	cmd.Flags().StringVar(&p.PracticeArea, "practice-area", "", "free-text practice area filter")
	cmd.Flags().StringVar(&timeframe, "timeframe", string(research.DefaultTimeframe), "look-back window (1m, 3m, 6m, 1y)")
	return cmd
}
