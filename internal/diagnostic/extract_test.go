package diagnostic

import (
	"reflect"
	"testing"
)

func TestParseVerboseLocationBlock(t *testing.T) {
	input := "src/index.ts:12:4 noUnusedVariables  warn\n" +
		"  ! This variable is unused\n" +
		"  ! Remove it or prefix it with an underscore\n"

	diags, _ := Parse(input)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.File != "src/index.ts" {
		t.Errorf("File = %q, want src/index.ts", d.File)
	}
	if d.Line != 12 || d.Column != 4 {
		t.Errorf("location = %d:%d, want 12:4", d.Line, d.Column)
	}
	if d.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want warning", d.Severity)
	}
	if d.Rule != "noUnusedVariables" {
		t.Errorf("Rule = %q, want noUnusedVariables", d.Rule)
	}
	want := "This variable is unused\nRemove it or prefix it with an underscore"
	if d.Message != want {
		t.Errorf("Message = %q, want %q", d.Message, want)
	}
}

func TestParseVerboseMultipleBlocks(t *testing.T) {
	input := "src/a.ts:1:1 lint/error/noExplicitAny  error\n" +
		"  ! Unexpected any\n" +
		"  >  1 | const x: any = 1\n" +
		"src/b.ts:5:2 noUnusedImports  warn\n" +
		"  ! Unused import\n" +
		"Found 1 warnings\n" +
		"Found 1 errors\n"

	diags, sum := Parse(input)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].Severity != SeverityError {
		t.Errorf("diags[0].Severity = %q, want error", diags[0].Severity)
	}
	if len(diags[0].CodeSnippet) != 1 {
		t.Errorf("diags[0] snippet has %d lines, want 1", len(diags[0].CodeSnippet))
	}
	if diags[1].File != "src/b.ts" || diags[1].Severity != SeverityWarning {
		t.Errorf("diags[1] = %+v, want src/b.ts warning", diags[1])
	}
	if sum.TotalErrors != 1 || sum.TotalWarnings != 1 {
		t.Errorf("totals = %d errors / %d warnings, want 1/1", sum.TotalErrors, sum.TotalWarnings)
	}
}

func TestParseVerboseFixSuggestionsMarkFixable(t *testing.T) {
	input := "src/a.ts:3:1 lint/style/useConst  warn\n" +
		"  ! Use const instead\n" +
		"  - let x = 1\n" +
		"  + const x = 1\n"

	diags, _ := Parse(input)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if !diags[0].Fixable {
		t.Error("diagnostic with fix suggestions should be fixable")
	}
	if len(diags[0].CodeSnippet) != 2 {
		t.Errorf("snippet has %d lines, want 2", len(diags[0].CodeSnippet))
	}
}

func TestParseSummaryOnlyOutput(t *testing.T) {
	input := "Checked 14 files\n" +
		"  - src/index.ts\n" +
		"  - src/actions/swap.ts\n" +
		"The number of diagnostics exceeds the number allowed by Biome\n" +
		"Found 7 warnings\n" +
		"Found 2 errors\n"

	diags, sum := Parse(input)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1 synthetic summary", len(diags))
	}
	d := diags[0]
	if d.File != "Summary" || d.Rule != "summary" {
		t.Errorf("summary diagnostic = %+v", d)
	}
	if d.Message != "Found 7 warnings and 2 errors" {
		t.Errorf("Message = %q", d.Message)
	}
	if len(d.AdditionalInfo) != 1 {
		t.Errorf("AdditionalInfo has %d entries, want the limit notice", len(d.AdditionalInfo))
	}
	wantFiles := []string{"src/index.ts", "src/actions/swap.ts"}
	if !reflect.DeepEqual(sum.FilesProcessed, wantFiles) {
		t.Errorf("FilesProcessed = %v, want %v", sum.FilesProcessed, wantFiles)
	}
	if sum.TotalWarnings != 7 || sum.TotalErrors != 2 {
		t.Errorf("totals = %d/%d, want 7 warnings / 2 errors", sum.TotalWarnings, sum.TotalErrors)
	}
}

func TestParseJSONDiagnostics(t *testing.T) {
	input := `{"diagnostics":[{"file":"a.ts","severity":"error","message":"x"}]}`

	diags, sum := Parse(input)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Severity != SeverityError || d.File != "a.ts" || d.Line != 0 || d.Column != 0 {
		t.Errorf("diagnostic = %+v", d)
	}
	if sum.TotalErrors != 1 || sum.TotalWarnings != 0 {
		t.Errorf("totals = %d/%d, want 1 error", sum.TotalErrors, sum.TotalWarnings)
	}
}

func TestParseJSONSeverityDefaultConfigurable(t *testing.T) {
	input := `{"diagnostics":[{"file":"a.ts","message":"no severity"}]}`

	diags, _ := Parse(input)
	if diags[0].Severity != SeverityError {
		t.Errorf("default Severity = %q, want error", diags[0].Severity)
	}

	diags, _ = ParseWithOptions(input, Options{DefaultSeverity: SeverityWarning})
	if diags[0].Severity != SeverityWarning {
		t.Errorf("configured Severity = %q, want warning", diags[0].Severity)
	}
}

func TestParseEmptyAndUnmatchedInput(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "all clean here\nnothing to report\n"} {
		diags, sum := Parse(input)
		if len(diags) != 0 {
			t.Errorf("Parse(%q) produced %d diagnostics, want 0", input, len(diags))
		}
		if sum.TotalIssues() != 0 {
			t.Errorf("Parse(%q) totals = %d, want 0", input, sum.TotalIssues())
		}
	}
}

func TestParseHeuristicFallback(t *testing.T) {
	input := "ELIFECYCLE Command failed with exit code 1\n" +
		"error: biome binary not found\n" +
		"warning: lockfile out of date\n"

	diags, sum := Parse(input)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].Severity != SeverityError || diags[1].Severity != SeverityWarning {
		t.Errorf("severities = %q, %q", diags[0].Severity, diags[1].Severity)
	}
	if diags[0].File != "" || diags[0].Line != 0 || diags[0].Column != 0 {
		t.Errorf("heuristic diagnostic should leave location unknown: %+v", diags[0])
	}
	if sum.TotalErrors != 1 || sum.TotalWarnings != 1 {
		t.Errorf("totals = %d/%d, want 1/1", sum.TotalErrors, sum.TotalWarnings)
	}
}

func TestParseIdempotent(t *testing.T) {
	input := "src/index.ts:12:4 noUnusedVariables  warn\n" +
		"  ! This variable is unused\n" +
		"Found 1 warnings\n"

	first, firstSum := Parse(input)
	second, secondSum := Parse(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("diagnostics differ between runs:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(firstSum, secondSum) {
		t.Errorf("summaries differ: %+v vs %+v", firstSum, secondSum)
	}
}

func TestParseMalformedLocationNumbersDefaultToZero(t *testing.T) {
	input := "src/index.ts:twelve:four someRule  warn\n  ! broken location\n"

	diags, _ := Parse(input)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Line != 0 || diags[0].Column != 0 {
		t.Errorf("location = %d:%d, want 0:0", diags[0].Line, diags[0].Column)
	}
}
