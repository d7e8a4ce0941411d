// Package catalog holds the static level and skin tables shipped with the game.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/waste3d/memorymatch/internal/domain"
)

//go:embed levels.yaml
var levelsYAML []byte

//go:embed skins.yaml
var skinsYAML []byte

// Catalog is an immutable lookup table of levels and skins.
type Catalog struct {
	levels map[int]domain.LevelConfig
	skins  []domain.Skin
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog built from the embedded tables.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(levelsYAML, skinsYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded tables: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Parse builds a catalog from YAML level and skin documents.
func Parse(levelsDoc, skinsDoc []byte) (*Catalog, error) {
	var lf struct {
		Levels []domain.LevelConfig `yaml:"levels"`
	}
	if err := yaml.Unmarshal(levelsDoc, &lf); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	var sf struct {
		Skins []domain.Skin `yaml:"skins"`
	}
	if err := yaml.Unmarshal(skinsDoc, &sf); err != nil {
		return nil, fmt.Errorf("parse skins: %w", err)
	}

	c := &Catalog{levels: make(map[int]domain.LevelConfig, len(lf.Levels))}
	for _, l := range lf.Levels {
		if l.World < 1 || l.World > domain.WorldCount || l.Level < 1 || l.Level > domain.LevelsPerWorld {
			return nil, fmt.Errorf("level %d-%d out of range", l.World, l.Level)
		}
		if _, dup := c.levels[l.ID()]; dup {
			return nil, fmt.Errorf("duplicate level %d-%d", l.World, l.Level)
		}
		c.levels[l.ID()] = l
	}

	hasDefault := false
	for _, s := range sf.Skins {
		if s.ID == domain.DefaultSkinID {
			if s.Price != 0 {
				return nil, fmt.Errorf("default skin must be free")
			}
			hasDefault = true
		}
	}
	if !hasDefault {
		return nil, fmt.Errorf("missing %q skin", domain.DefaultSkinID)
	}
	c.skins = sf.Skins
	return c, nil
}

func (c *Catalog) Level(id int) (domain.LevelConfig, bool) {
	l, ok := c.levels[id]
	return l, ok
}

// Levels returns every level ordered by global id.
func (c *Catalog) Levels() []domain.LevelConfig {
	out := make([]domain.LevelConfig, 0, len(c.levels))
	for _, l := range c.levels {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b domain.LevelConfig) int { return a.ID() - b.ID() })
	return out
}

// LevelsByWorld returns the levels of one world ordered by level number.
func (c *Catalog) LevelsByWorld(world int) []domain.LevelConfig {
	var out []domain.LevelConfig
	for _, l := range c.levels {
		if l.World == world {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b domain.LevelConfig) int { return a.Level - b.Level })
	return out
}

// WorldTheme is the theme of a world's first level, or "" for unknown worlds.
func (c *Catalog) WorldTheme(world int) string {
	l, ok := c.levels[domain.GlobalLevelID(world, 1)]
	if !ok {
		return ""
	}
	return l.Theme
}

func (c *Catalog) Skin(id string) (domain.Skin, bool) {
	for _, s := range c.skins {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Skin{}, false
}

func (c *Catalog) Skins() []domain.Skin {
	return slices.Clone(c.skins)
}
