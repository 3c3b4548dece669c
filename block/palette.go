package block

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PaletteEntry is one named block in a palette file.
type PaletteEntry struct {
	ID   int `yaml:"id"`
	Data int `yaml:"data,omitempty"`
}

// PaletteConfig is the structure of a palette YAML file:
//
//	blocks:
//	  red_wool: {id: 35, data: 14}
//	  window: {id: 102}
type PaletteConfig struct {
	Blocks map[string]PaletteEntry `yaml:"blocks"`
}

// Palette resolves block names to blocks. Names defined in a palette file
// take precedence over the built-in ID table.
type Palette struct {
	blocks map[string]Block
}

// NewPalette returns a palette containing only the built-in names.
func NewPalette() *Palette {
	return &Palette{blocks: make(map[string]Block)}
}

// LoadPaletteFromYAML loads named blocks from a YAML file.
func LoadPaletteFromYAML(filename string) (*Palette, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	var config PaletteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse palette YAML: %w", err)
	}

	p := NewPalette()
	for name, entry := range config.Blocks {
		if entry.ID < 0 || entry.ID > 255 {
			return nil, fmt.Errorf("palette block %q: id %d out of range", name, entry.ID)
		}
		p.Add(name, Block{ID: ID(entry.ID), Data: entry.Data})
	}
	return p, nil
}

// Add registers or replaces a named block.
func (p *Palette) Add(name string, b Block) {
	p.blocks[normalizeName(name)] = b
}

// Lookup finds a named block in the palette, then in the built-in table.
func (p *Palette) Lookup(name string) (Block, bool) {
	if b, ok := p.blocks[normalizeName(name)]; ok {
		return b, true
	}
	if id, ok := Lookup(name); ok {
		return Of(id), true
	}
	return Block{}, false
}

// Resolve turns a name, "id", "id:data" or "name:data" into a block.
func (p *Palette) Resolve(s string) (Block, error) {
	if b, err := Parse(s); err == nil {
		return b, nil
	}

	name, data, hasData := strings.Cut(s, ":")
	b, ok := p.Lookup(name)
	if !ok {
		return Block{}, fmt.Errorf("unknown block %q", name)
	}
	if hasData {
		d, err := Parse("0:" + data)
		if err != nil {
			return Block{}, fmt.Errorf("block %q: bad data value %q", name, data)
		}
		b.Data = d.Data
	}
	return b, nil
}

// Names returns every name the palette can resolve, sorted.
func (p *Palette) Names() []string {
	seen := make(map[string]bool)
	for _, name := range Names() {
		seen[name] = true
	}
	for name := range p.blocks {
		seen[name] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
