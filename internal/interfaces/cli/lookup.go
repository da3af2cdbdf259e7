package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Fetch single entities and resolve citations",
	}

	cmd.AddCommand(
		newEntityCmd("court", "Fetch a court by id", func(ctx context.Context, c *CLIContext, id string) (interface{}, error) {
			return c.Engine.Lookup.GetCourt(ctx, id)
		}),
		newEntityCmd("opinion", "Fetch an opinion by id", func(ctx context.Context, c *CLIContext, id string) (interface{}, error) {
			return c.Engine.Lookup.GetOpinion(ctx, id)
		}),
		newEntityCmd("cluster", "Fetch an opinion cluster by id", func(ctx context.Context, c *CLIContext, id string) (interface{}, error) {
			return c.Engine.Lookup.GetOpinionCluster(ctx, id)
		}),
		newEntityCmd("docket", "Fetch a docket by id", func(ctx context.Context, c *CLIContext, id string) (interface{}, error) {
			return c.Engine.Lookup.GetDocket(ctx, id)
		}),
		newEntityCmd("judge", "Fetch a judge by id", func(ctx context.Context, c *CLIContext, id string) (interface{}, error) {
			return c.Engine.Lookup.GetJudge(ctx, id)
		}),
		newCitationCmd(),
	)
	return cmd
}

type fetchFunc func(ctx context.Context, c *CLIContext, id string) (interface{}, error)

func newEntityCmd(name, short string, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cliCtx.operationContext(cmd)
			defer cancel()

			v, err := fetch(ctx, cliCtx, args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, v)
		},
	}
}

func newCitationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "citations [text...]",
		Short: "Find and resolve the citations in a block of text",
		Long:  "Resolve the citations found in the arguments, or in standard input when no argument is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if text == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(raw)
			}
			if strings.TrimSpace(text) == "" {
				return errors.InvalidParam("no text to resolve")
			}

			ctx, cancel := cliCtx.operationContext(cmd)
			defer cancel()
			matches, err := cliCtx.Engine.Lookup.ResolveCitation(ctx, text)
			if err != nil {
				return err
			}
			return PrintResult(cmd, matches)
		},
	}
}
