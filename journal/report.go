package journal

import (
	"bytes"
	"io"
	"os"
	"text/template"
	"time"
)

var runOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// WriteOrg renders the run summary as an org-mode block, for keeping a
// reconciliation log alongside trading notes.
func (r *RunRecord) WriteOrg(path string) error {
	t, err := template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, r); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// RenderOrg writes the same block to an arbitrary writer.
func (r *RunRecord) RenderOrg(w io.Writer) error {
	t, err := template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate)
	if err != nil {
		return err
	}
	return t.Execute(w, r)
}

const RunOrgTemplate = `
* RECON: {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:SOURCE:      {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:EVENTS:      {{.Events}}
:FILLS:       {{.Fills}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:ANOMALIES:   {{.Anomalies}}
:TOTAL_PNL:   {{printf "%.2f" .TotalPnL}}
:TOTAL_FEES:  {{printf "%.2f" .TotalFees}}
:WIN_RATE:    {{printf "%.2f" .WinRate}}
:PROFIT_FAC:  {{if ne .ProfitFactor 0.0}}{{printf "%.2f" .ProfitFactor}}{{else}}(profit-factor?){{end}}
:MAX_DD:      {{printf "%.2f" .MaxDrawdown}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:        *{{printf "%.2f" .TotalPnL}}*
- Fees Paid:      *{{printf "%.2f" .TotalFees}}*
- Win Rate:       *{{printf "%.2f" .WinRate}}%*
- Profit Factor:  *{{if ne .ProfitFactor 0.0}}{{printf "%.2f" .ProfitFactor}}{{else}}(profit-factor?){{end}}*
- Max Drawdown:   *{{printf "%.2f" .MaxDrawdown}}*

** Fill Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.Fills}} |
`
