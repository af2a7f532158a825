package research

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Partner holds the YAML frontmatter fields of a partner's index.md.
type Partner struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Website     string   `yaml:"website"`
	Twitter     string   `yaml:"twitter"`
	Tags        []string `yaml:"tags"`
}

// Doc is a parsed partner page: the raw frontmatter block (preserved
// verbatim for re-emission), the parsed fields, and the markdown body.
type Doc struct {
	RawFrontmatter string
	Meta           Partner
	Content        string
}

// ParseDocFile reads and parses a partner markdown file.
func ParseDocFile(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading partner file: %w", err)
	}
	return ParseDoc(string(data))
}

// ParseDoc parses partner page content. Pages without frontmatter are valid:
// the whole input becomes the body. Malformed frontmatter YAML keeps the raw
// block but yields empty fields.
func ParseDoc(content string) (*Doc, error) {
	doc := &Doc{Content: strings.TrimSpace(content)}

	fm, body, ok := splitFrontmatter(content)
	if !ok {
		return doc, nil
	}

	doc.RawFrontmatter = "---\n" + fm + "---"
	doc.Content = body
	if err := yaml.Unmarshal([]byte(fm), &doc.Meta); err != nil {
		return doc, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}
	return doc, nil
}

// splitFrontmatter splits content into a YAML frontmatter block and the
// markdown body. ok is false when no complete frontmatter block exists.
func splitFrontmatter(content string) (fm, body string, ok bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "---") {
		return "", "", false
	}

	rest := content[3:]
	if len(rest) > 0 && rest[0] == '\n' {
		rest = rest[1:]
	} else if len(rest) > 1 && rest[0] == '\r' && rest[1] == '\n' {
		rest = rest[2:]
	}

	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", false
	}

	fm = rest[:idx+1]
	body = rest[idx+4:]
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	} else if len(body) > 1 && body[0] == '\r' && body[1] == '\n' {
		body = body[2:]
	}
	return fm, strings.TrimSpace(body), true
}
