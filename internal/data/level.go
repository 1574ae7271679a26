package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/duskfall/core/internal/geom"
	"gopkg.in/yaml.v3"
)

// EnemyTemplate holds static data for an enemy kind loaded from YAML.
type EnemyTemplate struct {
	Kind           string  `yaml:"kind"`
	HP             float64 `yaml:"hp"`
	Speed          float64 `yaml:"speed"`
	Damage         float64 `yaml:"damage"`
	AttackRange    float64 `yaml:"attack_range"`
	DetectRange    float64 `yaml:"detect_range"`
	AttackLength   float64 `yaml:"attack_length"`   // seconds
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds
}

// EnemySpawn places one enemy of a template kind, with an optional patrol route.
type EnemySpawn struct {
	Kind   string      `yaml:"kind"`
	At     geom.Vec2   `yaml:"at"`
	Patrol []geom.Vec2 `yaml:"patrol"`
}

// Wave is a group of enemies released during battle, Delay seconds after the
// previous wave (or after battle starts for the first one).
type Wave struct {
	Delay float64   `yaml:"delay"`
	Kind  string    `yaml:"kind"`
	Count int       `yaml:"count"`
	At    geom.Vec2 `yaml:"at"`
}

type CollectibleSpawn struct {
	At    geom.Vec2 `yaml:"at"`
	Value int       `yaml:"value"`
}

type PlayerSpawn struct {
	At          geom.Vec2 `yaml:"at"`
	HP          float64   `yaml:"hp"`
	Speed       float64   `yaml:"speed"`
	Damage      float64   `yaml:"damage"`
	AttackRange float64   `yaml:"attack_range"`
}

type Shadow struct {
	Shear float64 `yaml:"shear"`
	Scale float64 `yaml:"scale"`
}

// Level is one playable map.
type Level struct {
	Name            string             `yaml:"name"`
	PhaseLength     float64            `yaml:"phase_length"` // stealth seconds
	Transition      float64            `yaml:"transition"`   // night-fall seconds
	CellSize        float64            `yaml:"cell_size"`
	Tiles           []string           `yaml:"tiles"` // '#' = blocked
	Player          PlayerSpawn        `yaml:"player"`
	StealthAmbience geom.Color         `yaml:"stealth_ambience"`
	BattleAmbience  geom.Color         `yaml:"battle_ambience"`
	Shadow          Shadow             `yaml:"shadow"`
	Collectibles    []CollectibleSpawn `yaml:"collectibles"`
	Enemies         []EnemySpawn       `yaml:"enemies"`
	Waves           []Wave             `yaml:"waves"`
}

type levelListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
	Levels  []Level         `yaml:"levels"`
}

// LevelTable holds enemy templates and levels indexed by name.
type LevelTable struct {
	templates map[string]*EnemyTemplate
	levels    map[string]*Level
}

// LoadLevelTable loads enemy templates and levels from a YAML file.
func LoadLevelTable(path string) (*LevelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level_list: %w", err)
	}
	return ParseLevelTable(raw)
}

// ParseLevelTable decodes and validates level YAML.
func ParseLevelTable(raw []byte) (*LevelTable, error) {
	var f levelListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse level_list: %w", err)
	}
	t := &LevelTable{
		templates: make(map[string]*EnemyTemplate, len(f.Enemies)),
		levels:    make(map[string]*Level, len(f.Levels)),
	}
	for i := range f.Enemies {
		e := &f.Enemies[i]
		t.templates[e.Kind] = e
	}
	for i := range f.Levels {
		lvl := &f.Levels[i]
		if err := t.validate(lvl); err != nil {
			return nil, fmt.Errorf("level %q: %w", lvl.Name, err)
		}
		t.levels[lvl.Name] = lvl
	}
	return t, nil
}

func (t *LevelTable) validate(lvl *Level) error {
	if lvl.Name == "" {
		return fmt.Errorf("missing name")
	}
	if lvl.PhaseLength < 0 || lvl.Transition < 0 {
		return fmt.Errorf("negative phase timing")
	}
	if lvl.CellSize == 0 {
		lvl.CellSize = 1
	}
	for _, e := range lvl.Enemies {
		if _, ok := t.templates[e.Kind]; !ok {
			return fmt.Errorf("unknown enemy kind %q", e.Kind)
		}
	}
	for _, w := range lvl.Waves {
		if _, ok := t.templates[w.Kind]; !ok {
			return fmt.Errorf("unknown wave kind %q", w.Kind)
		}
	}
	return nil
}

// Get returns a level by name, or nil if not found.
func (t *LevelTable) Get(name string) *Level {
	return t.levels[name]
}

// Template returns an enemy template by kind, or nil if not found.
func (t *LevelTable) Template(kind string) *EnemyTemplate {
	return t.templates[kind]
}

// Count returns the number of loaded levels.
func (t *LevelTable) Count() int {
	return len(t.levels)
}

// Names returns level names in sorted order.
func (t *LevelTable) Names() []string {
	names := make([]string, 0, len(t.levels))
	for n := range t.levels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
