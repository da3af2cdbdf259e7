package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// maxCellWidth truncates table cells such as case names.
const maxCellWidth = 48

func isValidOutputFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatJSON, FormatYAML, FormatTable:
		return true
	}
	return false
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := FormatJSON
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.OutputFormat
	}

	switch format {
	case FormatYAML:
		return printYAML(cmd, data)
	case FormatTable:
		return printTable(cmd, data)
	default:
		return printJSON(cmd, data)
	}
}

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printYAML renders data through its JSON form so that field names and date
// formats match the JSON output.
func printYAML(cmd *cobra.Command, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// printTable outputs data as a table when its type has a tabular form and
// falls back to JSON otherwise.
func printTable(cmd *cobra.Command, data interface{}) error {
	headers, rows, ok := tableOf(data)
	if !ok {
		return printJSON(cmd, data)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows))
	return nil
}

func tableOf(data interface{}) ([]string, [][]string, bool) {
	switch v := data.(type) {
	case *research.SearchResult:
		return searchTable(v)
	case *research.LegalAnalyticsSnapshot:
		return snapshotTable(v)
	case *research.VendorRiskProfile:
		return riskTable(v)
	case []research.CitationMatch:
		rows := make([][]string, 0, len(v))
		for _, m := range v {
			rows = append(rows, []string{m.Citation, strconv.Itoa(m.Status), strings.Join(m.Normalized, "; "), strings.Join(m.ClusterIDs, ",")})
		}
		return []string{"CITATION", "STATUS", "NORMALIZED", "CLUSTERS"}, rows, true
	}
	return nil, nil, false
}

func searchTable(r *research.SearchResult) ([]string, [][]string, bool) {
	switch r.ResourceType {
	case research.ResourceRegistryRecord:
		rows := [][]string{}
		for _, d := range r.RegistryRecords() {
			rows = append(rows, []string{d.DocketID, d.CaseName, d.DocketNumber, firstNonEmpty(d.Court, d.CourtID), d.DateFiled.String(), d.DateTerminated.String()})
		}
		return []string{"DOCKET", "CASE", "NUMBER", "COURT", "FILED", "TERMINATED"}, rows, true
	case research.ResourcePerson:
		rows := [][]string{}
		for _, p := range r.People() {
			rows = append(rows, []string{p.PersonID, p.Name, strings.Join(p.Courts, ","), strings.Join(p.Parties, ",")})
		}
		return []string{"PERSON", "NAME", "COURTS", "AFFILIATIONS"}, rows, true
	default:
		rows := [][]string{}
		for _, o := range r.Opinions() {
			rows = append(rows, []string{o.ClusterID, o.CaseName, firstNonEmpty(o.Court, o.CourtID), o.DateFiled.String(), string(o.Status), strconv.Itoa(o.CitationCount)})
		}
		return []string{"CLUSTER", "CASE", "COURT", "FILED", "STATUS", "CITED BY"}, rows, true
	}
}

func snapshotTable(s *research.LegalAnalyticsSnapshot) ([]string, [][]string, bool) {
	rows := [][]string{
		{"timeframe", string(s.Timeframe)},
		{"window", s.Start.String() + " .. " + s.End.String()},
		{"total cases", strconv.Itoa(s.TotalCases)},
		{"sample size", strconv.Itoa(s.SampleSize)},
		{"degraded", strconv.FormatBool(s.Degraded)},
	}
	for _, c := range s.TopCourts {
		rows = append(rows, []string{"court", fmt.Sprintf("%s (%d, %.2f%%)", c.Court, c.CaseCount, c.Percentage)})
	}
	for _, c := range s.CaseTypeDistribution {
		rows = append(rows, []string{"case type", fmt.Sprintf("%s (%d, %.2f%%)", c.CaseType, c.CaseCount, c.Percentage)})
	}
	for _, b := range s.RecentTrends {
		rows = append(rows, []string{"trend " + b.Period, strconv.Itoa(b.CaseCount)})
	}
	for _, o := range s.CitationNetwork.MostCited {
		rows = append(rows, []string{"most cited", fmt.Sprintf("%s (%d)", o.CaseName, o.CitationCount)})
	}
	for _, f := range s.Failures {
		rows = append(rows, []string{"failure", f.Operation + "/" + string(f.Resource) + ": " + f.Reason})
	}
	return []string{"FIELD", "VALUE"}, rows, true
}

func riskTable(p *research.VendorRiskProfile) ([]string, [][]string, bool) {
	duration := "n/a"
	if p.AverageMetrics.DurationDays != nil {
		duration = fmt.Sprintf("%.1f days (n=%d)", *p.AverageMetrics.DurationDays, p.AverageMetrics.DurationN)
	}
	rows := [][]string{
		{"vendor", p.VendorName},
		{"risk score", strconv.Itoa(p.RiskScore)},
		{"opinions", strconv.Itoa(p.OpinionCount)},
		{"registry records", strconv.Itoa(p.RegistryCount)},
		{"active litigation", strconv.Itoa(p.LegalExposure.ActiveLitigation)},
		{"practice areas", strings.Join(p.PracticeAreas, ", ")},
		{"jurisdictions", strings.Join(p.Jurisdictions, ", ")},
		{"average duration", duration},
		{"degraded", strconv.FormatBool(p.Degraded)},
	}
	for _, f := range p.Failures {
		rows = append(rows, []string{"failure", f.Operation + "/" + string(f.Resource) + ": " + f.Reason})
	}
	return []string{"FIELD", "VALUE"}, rows, true
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// renderTable renders headers and rows as an aligned table.  Widths are
// display widths, so wide runes in case names keep the columns aligned.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = runewidth.StringWidth(h)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[r][i] = runewidth.Truncate(row[i], maxCellWidth, "…")
			}
			if w := runewidth.StringWidth(cells[r][i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(vals []string) {
		for i, v := range vals {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(vals)-1 {
				sb.WriteString(v)
				continue
			}
			sb.WriteString(runewidth.FillRight(v, colWidths[i]))
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range cells {
		writeRow(row)
	}
	return sb.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
