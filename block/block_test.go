package block

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBlockString(t *testing.T) {
	tests := []struct {
		block Block
		want  string
	}{
		{Of(Stone), "1"},
		{Of(Wool).WithData(14), "35,14"},
		{Block{ID: WoodPlanks, Data: 2}, "5,2"},
	}
	for _, tt := range tests {
		if got := tt.block.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.block, got, tt.want)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, b := range []Block{{ID: 5, Data: 0}, {ID: 5, Data: 2}, {ID: 35, Data: 15}} {
		got, err := Decode(b.String())
		if err != nil {
			t.Fatalf("Decode(%q): %v", b.String(), err)
		}
		if got != b {
			t.Errorf("Decode(%q) = %#v, want %#v", b.String(), got, b)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		input   string
		want    Block
		wantErr bool
	}{
		{"5", Block{ID: 5}, false},
		{"5,0", Block{ID: 5}, false},
		{" 35,14\n", Block{ID: 35, Data: 14}, false},
		{"", Block{}, true},
		{"stone", Block{}, true},
		{"5,x", Block{}, true},
	}
	for _, tt := range tests {
		got, err := Decode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Decode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Decode(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestArgs(t *testing.T) {
	if got := Of(Glass).Args(); len(got) != 1 || got[0] != 20 {
		t.Errorf("Args() = %v, want [20]", got)
	}
	if got := Of(Wool).WithData(3).Args(); len(got) != 2 || got[0] != 35 || got[1] != 3 {
		t.Errorf("Args() = %v, want [35 3]", got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want ID
		ok   bool
	}{
		{"stone", Stone, true},
		{"Diamond Block", DiamondBlock, true},
		{"nether-reactor-core", NetherReactorCore, true},
		{"water", WaterFlowing, true},
		{"unobtainium", 0, false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Lookup(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadPaletteFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	content := `blocks:
  red_wool: {id: 35, data: 14}
  window:
    id: 102
  stone: {id: 98}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write palette: %v", err)
	}

	p, err := LoadPaletteFromYAML(path)
	if err != nil {
		t.Fatalf("LoadPaletteFromYAML: %v", err)
	}

	if b, ok := p.Lookup("red wool"); !ok || b != (Block{ID: Wool, Data: 14}) {
		t.Errorf("Lookup(red wool) = %#v, %v", b, ok)
	}
	if b, ok := p.Lookup("window"); !ok || b != Of(GlassPane) {
		t.Errorf("Lookup(window) = %#v, %v", b, ok)
	}
	// Palette entries override the built-in table.
	if b, ok := p.Lookup("stone"); !ok || b != Of(StoneBrick) {
		t.Errorf("Lookup(stone) = %#v, %v", b, ok)
	}
	if b, ok := p.Lookup("obsidian"); !ok || b != Of(Obsidian) {
		t.Errorf("Lookup(obsidian) = %#v, %v", b, ok)
	}
}

func TestLoadPaletteErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPaletteFromYAML(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("blocks:\n  huge: {id: 4096}\n"), 0644)
	if _, err := LoadPaletteFromYAML(bad); err == nil {
		t.Error("expected error for out of range id")
	}
}

func TestPaletteResolve(t *testing.T) {
	p := NewPalette()
	p.Add("red_wool", Block{ID: Wool, Data: 14})

	tests := []struct {
		input   string
		want    Block
		wantErr bool
	}{
		{"49", Of(Obsidian), false},
		{"35:4", Block{ID: Wool, Data: 4}, false},
		{"35,4", Block{ID: Wool, Data: 4}, false},
		{"red_wool", Block{ID: Wool, Data: 14}, false},
		{"wool:11", Block{ID: Wool, Data: 11}, false},
		{"glass", Of(Glass), false},
		{"wool:x", Block{}, true},
		{"mystery", Block{}, true},
	}
	for _, tt := range tests {
		got, err := p.Resolve(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}

	names := p.Names()
	found := false
	for _, n := range names {
		if n == "red_wool" {
			found = true
		}
	}
	if !found {
		t.Error("Names() missing palette entry red_wool")
	}
}
