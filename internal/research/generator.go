package research

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// completer is the part of Client the generator depends on; tests substitute
// a canned completion.
type completer interface {
	Complete(prompt string) (string, error)
}

// Generator enriches partner documentation pages one directory at a time,
// pausing between completion calls to respect the API's rate limit.
type Generator struct {
	client completer
	delay  time.Duration
	log    *zap.SugaredLogger
}

func NewGenerator(client *Client, delay time.Duration, log *zap.SugaredLogger) *Generator {
	return &Generator{client: client, delay: delay, log: log}
}

// Outcome reports what happened to one partner directory.
type Outcome struct {
	Partner      string
	EnhancedPath string
	BriefPath    string
	Err          error
}

// ProcessPartners walks rootDir for partner folders (any directory holding
// an index.md), researches each, and writes index2.md and brief.md beside
// the original. A failing partner is recorded and skipped, never fatal.
func (g *Generator) ProcessPartners(rootDir string) ([]Outcome, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("reading partners directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(rootDir, e.Name(), "index.md")); err == nil {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	var outcomes []Outcome
	for i, dir := range dirs {
		if i > 0 && g.delay > 0 {
			time.Sleep(g.delay)
		}
		outcomes = append(outcomes, g.processPartner(rootDir, dir))
	}
	return outcomes, nil
}

func (g *Generator) processPartner(rootDir, dir string) Outcome {
	name := partnerName(dir)
	out := Outcome{Partner: name}
	g.log.Infof("processing partner: %s", name)

	doc, err := ParseDocFile(filepath.Join(rootDir, dir, "index.md"))
	if err != nil {
		out.Err = err
		return out
	}

	research, err := g.client.Complete(BuildPrompt(name, doc))
	if err != nil {
		out.Err = fmt.Errorf("researching %s: %w", name, err)
		return out
	}
	research = StripReasoning(research)

	enhancedPath := filepath.Join(rootDir, dir, "index2.md")
	if err := os.WriteFile(enhancedPath, []byte(EnhancedMarkdown(doc, research)), 0644); err != nil {
		out.Err = fmt.Errorf("writing enhanced page: %w", err)
		return out
	}
	out.EnhancedPath = enhancedPath

	briefPath := filepath.Join(rootDir, dir, "brief.md")
	if err := os.WriteFile(briefPath, []byte(BriefMarkdown(doc, research)), 0644); err != nil {
		out.Err = fmt.Errorf("writing brief page: %w", err)
		return out
	}
	out.BriefPath = briefPath
	return out
}

// partnerName turns a folder name like "injective-protocol" into a display
// name like "Injective Protocol".
func partnerName(dir string) string {
	words := strings.Split(strings.ReplaceAll(dir, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
