package runner

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/games/runner/sim"
)

//go:embed sprites.yaml
var defaultSpritesYAML []byte

// Sprite is a character bitmap. Spaces are transparent.
type Sprite struct {
	Name string
	rows [][]rune
	w    int
}

// Size returns the sprite width and height in characters.
func (s Sprite) Size() (int, int) {
	return s.w, len(s.rows)
}

// At samples the sprite at texture coordinates (u, v), both in [0, 1],
// with v = 0 on the top row. Coordinates outside the range are clamped.
func (s Sprite) At(u, v float64) rune {
	if s.w == 0 || len(s.rows) == 0 {
		return ' '
	}
	col := texel(u, s.w)
	row := s.rows[texel(v, len(s.rows))]
	if col >= len(row) {
		return ' '
	}
	return row[col]
}

func texel(t float64, n int) int {
	i := int(math.Floor(t * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SpriteCatalog resolves sprite names from the draw list.
type SpriteCatalog interface {
	Lookup(name string) (Sprite, bool)
}

// SpriteSheet is a SpriteCatalog loaded from YAML.
type SpriteSheet struct {
	sprites map[string]Sprite
}

type spriteFile struct {
	Sprites map[string][]string `yaml:"sprites"`
}

// LoadSprites parses a sprite sheet. Every player pose must be present.
func LoadSprites(data []byte) (*SpriteSheet, error) {
	var f spriteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("runner: failed to parse sprites: %w", err)
	}

	sheet := &SpriteSheet{sprites: make(map[string]Sprite, len(f.Sprites))}
	for name, lines := range f.Sprites {
		sp := Sprite{Name: name, rows: make([][]rune, len(lines))}
		for i, line := range lines {
			sp.rows[i] = []rune(line)
			if len(sp.rows[i]) > sp.w {
				sp.w = len(sp.rows[i])
			}
		}
		if sp.w == 0 {
			return nil, fmt.Errorf("runner: sprite %q is empty", name)
		}
		sheet.sprites[name] = sp
	}

	for _, p := range sim.Poses() {
		if _, ok := sheet.sprites[p.String()]; !ok {
			return nil, fmt.Errorf("runner: sprite sheet has no %q sprite", p)
		}
	}
	return sheet, nil
}

// DefaultSprites returns the embedded sprite sheet.
func DefaultSprites() *SpriteSheet {
	sheet, err := LoadSprites(defaultSpritesYAML)
	if err != nil {
		panic(err)
	}
	return sheet
}

// Lookup returns the sprite with the given name.
func (s *SpriteSheet) Lookup(name string) (Sprite, bool) {
	sp, ok := s.sprites[name]
	return sp, ok
}
