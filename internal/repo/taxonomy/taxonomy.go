package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// Taxonomy classifies product titles into storefront categories by keyword.
// Entries are tried in declared order and the first match wins, so the data
// file lists specific categories before general ones.
type Taxonomy struct {
	entries []entry
}

type entry struct {
	name     string
	keywords []string
}

type taxonomyFile struct {
	Categories []categoryEntry `yaml:"categories"`
}

type categoryEntry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// NewTaxonomy loads the taxonomy configured for the process, falling back
// to the built-in table when no path is set.
func NewTaxonomy(conf *config.Config) (*Taxonomy, error) {
	return Load(conf.Taxonomy.Path)
}

// Load parses a YAML taxonomy. An empty path loads the embedded default.
func Load(path string) (*Taxonomy, error) {
	data := defaultTaxonomyYAML
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
		}
		data = fileData
	}
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	t := &Taxonomy{entries: make([]entry, 0, len(file.Categories))}
	for i, c := range file.Categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return nil, fmt.Errorf("taxonomy category %d has no name", i)
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("taxonomy category %q has no keywords", name)
		}
		t.entries = append(t.entries, entry{name: name, keywords: keywords})
	}
	return t, nil
}

// Classify returns the first category whose keywords appear in the title.
func (t *Taxonomy) Classify(title string) (string, bool) {
	lower := strings.ToLower(title)
	for _, e := range t.entries {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.name, true
			}
		}
	}
	return "", false
}

// Categories lists the category names in matching order.
func (t *Taxonomy) Categories() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return names
}
