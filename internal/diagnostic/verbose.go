package diagnostic

import (
	"fmt"
	"strconv"
	"strings"
)

const limitNoticeToken = "The number of diagnostics exceeds"

// verboseSource parses Biome's verbose console output. A location line
// (`<file>:<line>:<column> <rule text>`) opens a diagnostic; marker-prefixed
// lines that follow feed its message, code snippet, or fix suggestions until
// an unmarked line closes the block. Summary lines are tracked throughout.
type verboseSource struct{}

func (verboseSource) extract(input string, _ Options) ([]Diagnostic, Summary) {
	var (
		diags   []Diagnostic
		sum     Summary
		current *Diagnostic
		message []string
		inBlock bool
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Message = strings.Join(message, "\n")
		diags = append(diags, *current)
		current = nil
		message = nil
	}

	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.Contains(line, limitNoticeToken) {
			sum.LimitNotice = line
			continue
		}

		if strings.HasPrefix(line, "- src/") {
			sum.FilesProcessed = append(sum.FilesProcessed, strings.TrimPrefix(line, "- "))
			continue
		}

		if strings.Contains(line, "Found") && (strings.Contains(line, "warnings") || strings.Contains(line, "errors")) {
			if fields := strings.Fields(line); len(fields) >= 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					if strings.Contains(line, "warnings") {
						sum.TotalWarnings = n
					} else {
						sum.TotalErrors = n
					}
				}
			}
			continue
		}

		if file, lineNo, col, rest, ok := parseLocation(line); ok {
			flush()
			current = &Diagnostic{
				File:     file,
				Line:     lineNo,
				Column:   col,
				Rule:     ruleFrom(rest),
				Severity: inferSeverity(rest),
			}
			inBlock = true
			continue
		}

		if !inBlock {
			continue
		}
		switch {
		case strings.HasPrefix(raw, "  ! "):
			message = append(message, raw[4:])
		case strings.HasPrefix(raw, "  i "):
			message = append(message, raw[4:])
		case strings.HasPrefix(raw, "  >"), strings.HasPrefix(raw, "     "):
			if current != nil {
				current.CodeSnippet = append(current.CodeSnippet, raw)
			}
		case strings.HasPrefix(raw, "  -"), strings.HasPrefix(raw, "  +"):
			// Fix suggestions travel with the snippet.
			if current != nil {
				current.CodeSnippet = append(current.CodeSnippet, raw)
				current.Fixable = true
			}
		default:
			inBlock = false
		}
	}
	flush()

	// Biome sometimes reports only totals. Keep them visible as a single
	// synthetic summary diagnostic the formatter knows how to render.
	if len(diags) == 0 && sum.TotalIssues() > 0 {
		summary := Diagnostic{
			File:     "Summary",
			Severity: SeverityWarning,
			Rule:     "summary",
			Message:  fmt.Sprintf("Found %d warnings and %d errors", sum.TotalWarnings, sum.TotalErrors),
		}
		if sum.LimitNotice != "" {
			summary.AdditionalInfo = append(summary.AdditionalInfo, sum.LimitNotice)
		}
		summary.CodeSnippet = append(summary.CodeSnippet, "Files analyzed:", "")
		for _, f := range sum.FilesProcessed {
			summary.CodeSnippet = append(summary.CodeSnippet, "  - "+f)
		}
		diags = append(diags, summary)
	}

	return diags, sum
}

// parseLocation splits a `<file>:<line>:<column> <rest>` line. The first
// field must name a path (something with a dot or slash before the first
// colon); numeric fields that fail to parse default to 0.
func parseLocation(line string) (file string, lineNo, col int, rest string, ok bool) {
	if strings.HasPrefix(line, "i ") {
		return "", 0, 0, "", false
	}
	loc := line
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		loc = line[:idx]
		rest = strings.TrimSpace(line[idx+1:])
	}
	parts := strings.Split(loc, ":")
	if len(parts) < 2 {
		return "", 0, 0, "", false
	}
	file = parts[0]
	if file == "" || !strings.ContainsAny(file, "./") {
		return "", 0, 0, "", false
	}
	if len(parts) > 1 {
		lineNo, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		col, _ = strconv.Atoi(parts[2])
	}
	return file, lineNo, col, rest, true
}

// ruleFrom takes the rule identifier off the text following a location:
// everything up to the first double space.
func ruleFrom(rest string) string {
	if idx := strings.Index(rest, "  "); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// inferSeverity follows the verbose output's own wording: a block is an
// error only when its rule text says so.
func inferSeverity(rest string) Severity {
	if strings.Contains(strings.ToLower(rest), "error") {
		return SeverityError
	}
	return SeverityWarning
}
