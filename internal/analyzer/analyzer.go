package analyzer

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/zpark/eliza/internal/diagnostic"
)

// Analyzer shells out to the JavaScript toolchain (biome for linting, madge
// for circular-dependency checks) and captures their console output. The
// tools are opaque: only their text output and exit code matter here.
type Analyzer struct {
	workDir string
	log     *zap.SugaredLogger
}

func New(workDir string, log *zap.SugaredLogger) *Analyzer {
	return &Analyzer{workDir: workDir, log: log}
}

// LintResult captures one biome invocation. Diagnostics are extracted from
// the raw output; AllOutput and ErrorLogs preserve the console text for the
// report's log dump.
type LintResult struct {
	Success     bool                    `json:"success"`
	Output      string                  `json:"output"`
	Errors      string                  `json:"errors"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	Summary     diagnostic.Summary      `json:"summary"`
	AllOutput   []string                `json:"all_output"`
	ErrorLogs   []string                `json:"error_logs"`
}

// DependencyResult captures one madge invocation.
type DependencyResult struct {
	Success      bool           `json:"success"`
	Dependencies map[string]any `json:"dependencies"`
	Errors       string         `json:"errors"`
}

// Result combines both checks for one target.
type Result struct {
	Success      bool             `json:"success"`
	Lint         LintResult       `json:"biome"`
	Dependencies DependencyResult `json:"dependencies"`
}

// RunLint executes `pnpm biome check src --verbose` inside the target
// directory. A non-zero exit is an expected outcome (issues were found), not
// an error: the output is still parsed and returned.
func (a *Analyzer) RunLint(target string) LintResult {
	a.log.Infof("running biome check in %s", target)

	cmd := exec.Command("pnpm", "biome", "check", "src", "--verbose")
	cmd.Dir = target

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := LintResult{
		Success:   err == nil,
		Output:    stdout.String(),
		Errors:    stderr.String(),
		AllOutput: splitLines(stdout.String()),
		ErrorLogs: splitLines(stderr.String()),
	}
	res.Diagnostics, res.Summary = diagnostic.Parse(res.Output)

	a.log.Infof("biome exit ok=%v, %d diagnostics extracted", res.Success, len(res.Diagnostics))
	return res
}

// RunDependencyCheck executes `pnpm dlx madge --json --warning --circular`
// against the target and parses its JSON dependency graph when present.
func (a *Analyzer) RunDependencyCheck(target string) DependencyResult {
	a.log.Infof("running dependency check for %s", target)

	cmd := exec.Command("pnpm", "dlx", "madge", "--json", "--warning", "--circular", target)
	cmd.Dir = a.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := DependencyResult{
		Success:      err == nil,
		Dependencies: map[string]any{},
		Errors:       stderr.String(),
	}
	if out := strings.TrimSpace(stdout.String()); out != "" {
		if jsonErr := json.Unmarshal([]byte(out), &res.Dependencies); jsonErr != nil {
			a.log.Warnf("madge output is not JSON: %v", jsonErr)
		}
	}
	return res
}

// Analyze runs both checks sequentially. Overall success requires both.
func (a *Analyzer) Analyze(target string) Result {
	res := Result{
		Lint:         a.RunLint(target),
		Dependencies: a.RunDependencyCheck(target),
	}
	res.Success = res.Lint.Success && res.Dependencies.Success
	return res
}

// AsMap converts the result into the generic mapping persisted inside a
// session checkpoint.
func (r Result) AsMap() map[string]any {
	data, err := json.Marshal(r)
	if err != nil {
		return map[string]any{"success": r.Success}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"success": r.Success}
	}
	return map[string]any{
		"success": r.Success,
		"results": map[string]any{
			"biome":        m["biome"],
			"dependencies": m["dependencies"],
		},
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
