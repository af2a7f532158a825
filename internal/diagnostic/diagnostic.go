package diagnostic

// Severity classifies one linting issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// normalize maps free-form severity text onto the enum, falling back to def
// for anything unrecognized.
func normalize(s string, def Severity) Severity {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s)
	}
	return def
}

// Diagnostic is one structured linting issue extracted from analyzer output.
// Line and Column are 0 when unknown.
type Diagnostic struct {
	File           string   `json:"file"`
	Line           int      `json:"line"`
	Column         int      `json:"column"`
	Severity       Severity `json:"severity"`
	Rule           string   `json:"rule"`
	Message        string   `json:"message"`
	CodeSnippet    []string `json:"code_snippet,omitempty"`
	AdditionalInfo []string `json:"additional_info,omitempty"`
	Fixable        bool     `json:"fixable,omitempty"`
}

// Summary carries the running totals and file list collected while parsing.
type Summary struct {
	TotalErrors    int
	TotalWarnings  int
	FilesProcessed []string
	LimitNotice    string
}

// TotalIssues returns the combined error and warning count.
func (s Summary) TotalIssues() int {
	return s.TotalErrors + s.TotalWarnings
}

// Options controls extraction behavior. The default severity applies when a
// structured diagnostic omits its severity; the verbose parser always infers
// from the rule text instead.
type Options struct {
	DefaultSeverity Severity
}

// DefaultOptions matches the structured-parser behavior of treating
// unspecified severities as errors.
func DefaultOptions() Options {
	return Options{DefaultSeverity: SeverityError}
}
