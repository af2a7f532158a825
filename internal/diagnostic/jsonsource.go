package diagnostic

import (
	"encoding/json"
	"strings"
)

// jsonSource maps Biome's JSON reporter shape, {"diagnostics": [...]},
// directly onto the Diagnostic model.
type jsonSource struct{}

type jsonDiagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Fixable  bool   `json:"fixable"`
}

type jsonDocument struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

func (jsonSource) extract(input string, opts Options) ([]Diagnostic, Summary) {
	var (
		doc jsonDocument
		sum Summary
	)
	if err := json.Unmarshal([]byte(strings.TrimSpace(input)), &doc); err != nil {
		return nil, sum
	}

	diags := make([]Diagnostic, 0, len(doc.Diagnostics))
	for _, d := range doc.Diagnostics {
		sev := normalize(d.Severity, opts.DefaultSeverity)
		switch sev {
		case SeverityError:
			sum.TotalErrors++
		case SeverityWarning:
			sum.TotalWarnings++
		}
		diags = append(diags, Diagnostic{
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
			Severity: sev,
			Rule:     d.Rule,
			Message:  d.Message,
			Fixable:  d.Fixable,
		})
	}
	return diags, sum
}
