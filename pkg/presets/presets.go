// Package presets holds the built-in grid catalog and reads user grid files.
package presets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/validation"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtinYAML []byte

// ErrUnknownPreset is returned by Get for names not in the catalog
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named grid with optional demo metadata
type Preset struct {
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	LoadIncrease float64    `json:"loadIncrease,omitempty"`
	Expected     string     `json:"expected,omitempty"`
	Graph        grid.Graph `json:"graph"`
}

// Catalog is an ordered, name-indexed set of presets
type Catalog struct {
	presets []Preset
	byName  map[string]int
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Builtin returns the embedded catalog
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = ParseCatalog(bytes.NewReader(builtinYAML))
	})
	return builtin, builtinErr
}

// ParseCatalog reads a catalog document and validates every grid in it
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]int, len(doc.Presets))}
	for _, p := range doc.Presets {
		if p.Name == "" {
			return nil, errors.New("preset without a name")
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("preset %q defined twice", p.Name)
		}
		g := p.graph()
		if err := validation.ValidateGraph(g, validation.GraphOptions{}); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		c.byName[p.Name] = len(c.presets)
		c.presets = append(c.presets, Preset{
			Name:         p.Name,
			Title:        validation.DefaultOr(p.Title, p.Name),
			Description:  p.Description,
			LoadIncrease: p.LoadIncrease,
			Expected:     p.Expected,
			Graph:        g,
		})
	}
	return c, nil
}

// Names returns preset names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}

// SortedNames returns preset names alphabetically
func (c *Catalog) SortedNames() []string {
	names := c.Names()
	sort.Strings(names)
	return names
}

// All returns every preset in catalog order. Graphs are copies.
func (c *Catalog) All() []Preset {
	out := make([]Preset, len(c.presets))
	for i, p := range c.presets {
		p.Graph = p.Graph.Clone()
		out[i] = p
	}
	return out
}

// Get returns a copy of the named preset
func (c *Catalog) Get(name string) (Preset, error) {
	i, ok := c.byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(c.SortedNames(), ", "))
	}
	p := c.presets[i]
	p.Graph = p.Graph.Clone()
	return p, nil
}

// Parse reads a single grid document (YAML or JSON) and validates it
func Parse(r io.Reader) (grid.Graph, error) {
	var doc graphFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return grid.Graph{}, fmt.Errorf("decode grid: %w", err)
	}
	g := doc.graph()
	if err := validation.ValidateGraph(g, validation.GraphOptions{}); err != nil {
		return grid.Graph{}, err
	}
	return g, nil
}

// LoadFile reads a grid document from disk
func LoadFile(path string) (grid.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid.Graph{}, fmt.Errorf("open grid file: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return grid.Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Marshal renders a grid in the document format Parse accepts
func Marshal(g grid.Graph) ([]byte, error) {
	return yaml.Marshal(g)
}
