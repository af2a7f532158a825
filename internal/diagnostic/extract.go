package diagnostic

import (
	"encoding/json"
	"strings"
)

// source is one way of turning raw analyzer output into diagnostics. The two
// variants cover Biome's verbose console text and its JSON reporter; Parse
// sniffs the input to pick one.
type source interface {
	extract(input string, opts Options) ([]Diagnostic, Summary)
}

// Parse extracts diagnostics from raw analyzer output using default options.
// It never fails: unrecognized input degrades to an empty or heuristic
// result.
func Parse(input string) ([]Diagnostic, Summary) {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions is Parse with an explicit severity default.
func ParseWithOptions(input string, opts Options) ([]Diagnostic, Summary) {
	if looksLikeJSON(input) {
		return jsonSource{}.extract(input, opts)
	}
	diags, sum := verboseSource{}.extract(input, opts)

	// The verbose parser recognized nothing: fall back to the coarse
	// per-line heuristic so obviously failing output still surfaces.
	if len(diags) == 0 && sum.TotalIssues() == 0 && len(sum.FilesProcessed) == 0 {
		return heuristicSource{}.extract(input, opts)
	}
	return diags, sum
}

// looksLikeJSON reports whether the whole input parses as a JSON document.
func looksLikeJSON(input string) bool {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// heuristicSource records any line mentioning an error or warning, leaving
// location fields at their unknown defaults.
type heuristicSource struct{}

func (heuristicSource) extract(input string, _ Options) ([]Diagnostic, Summary) {
	var (
		diags []Diagnostic
		sum   Summary
	)
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "error"):
			sum.TotalErrors++
			diags = append(diags, Diagnostic{Severity: SeverityError, Message: line})
		case strings.Contains(lower, "warning"):
			sum.TotalWarnings++
			diags = append(diags, Diagnostic{Severity: SeverityWarning, Message: line})
		}
	}
	return diags, sum
}
