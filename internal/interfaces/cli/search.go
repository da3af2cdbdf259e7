package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

type searchFlags struct {
	court        string
	judge        string
	caseName     string
	docketNumber string
	citation     string
	filedAfter   string
	filedBefore  string
	orderBy      string
	statuses     []string
	cursor       string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.court, "court", "", "court id filter (e.g. scotus, ca9)")
	fs.StringVar(&f.judge, "judge", "", "judge name filter")
	fs.StringVar(&f.caseName, "case-name", "", "case name filter")
	fs.StringVar(&f.docketNumber, "docket-number", "", "docket number filter")
	fs.StringVar(&f.citation, "citation", "", "citation filter (e.g. \"410 U.S. 113\")")
	fs.StringVar(&f.filedAfter, "filed-after", "", "earliest filing date (YYYY-MM-DD)")
	fs.StringVar(&f.filedBefore, "filed-before", "", "latest filing date (YYYY-MM-DD)")
	fs.StringVar(&f.orderBy, "order-by", "", "sort order (e.g. \"dateFiled desc\", \"score desc\")")
	fs.StringSliceVar(&f.statuses, "status", nil, "precedential statuses (comma-separated)")
	fs.StringVar(&f.cursor, "cursor", "", "page cursor from a previous result")
}

func (f *searchFlags) query(args []string) research.SearchQuery {
	statuses := make([]research.PrecedentialStatus, 0, len(f.statuses))
	for _, s := range f.statuses {
		statuses = append(statuses, research.PrecedentialStatus(strings.ToLower(strings.TrimSpace(s))))
	}
	return research.SearchQuery{
		Query:        strings.Join(args, " "),
		Court:        f.court,
		Judge:        f.judge,
		CaseName:     f.caseName,
		DocketNumber: f.docketNumber,
		Citation:     f.citation,
		FiledAfter:   f.filedAfter,
		FiledBefore:  f.filedBefore,
		OrderBy:      f.orderBy,
		Statuses:     statuses,
		Cursor:       f.cursor,
	}
}

type searchFunc func(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the opinion, registry and people corpora",
		Long:  "Run one search page against the research API.  Use --cursor with the next_cursor of a result to fetch the following page.",
	}

	cmd.AddCommand(
		newSearchSubCmd("opinions", "Search judicial opinions", func(c *CLIContext) searchFunc { return c.Engine.Search.SearchOpinions }),
		newSearchSubCmd("registry", "Search the docket registry", func(c *CLIContext) searchFunc { return c.Engine.Search.SearchRegistryRecords }),
		newSearchSubCmd("judges", "Search judges", func(c *CLIContext) searchFunc { return c.Engine.Search.SearchJudges }),
	)
	return cmd
}

func newSearchSubCmd(name, short string, pick func(*CLIContext) searchFunc) *cobra.Command {
	flags := &searchFlags{}
	cmd := &cobra.Command{
		Use:   name + " [query...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cliCtx.operationContext(cmd)
			defer cancel()

			q := flags.query(args)
			cliCtx.Logger.Debug("running search",
				logging.String(logging.FieldOperation, name),
				logging.String("query", q.Query))

			res, err := pick(cliCtx)(ctx, q)
			if err != nil {
				return err
			}
			return PrintResult(cmd, res)
		},
	}
	flags.register(cmd)
	return cmd
}
