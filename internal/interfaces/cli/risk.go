package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// highRiskScore is the score from which the risk command warns on stderr.
const highRiskScore = 70

// NewRiskCmd creates the risk command.
func NewRiskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "risk <vendor name...>",
		Short: "Assess the litigation risk of a vendor",
		Long:  "Search both corpora for the vendor name as an exact phrase and score its litigation exposure from 0 to 100.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cliCtx.operationContext(cmd)
			defer cancel()

			profile, err := cliCtx.Engine.Risk.AssessVendorRisk(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := PrintResult(cmd, profile); err != nil {
				return err
			}

			if profile.Degraded {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: assessment of %q is degraded; %d search(es) failed\n", profile.VendorName, len(profile.Failures))
			}
			if profile.RiskScore >= highRiskScore {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: vendor %q has a HIGH risk score of %d\n", profile.VendorName, profile.RiskScore)
			}
			return nil
		},
	}
}
