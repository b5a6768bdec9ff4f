package level

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"roguecore/pkg/engine/world"
)

// yamlLevelFile is the top-level YAML structure for level files.
type yamlLevelFile struct {
	Level yamlLevel `yaml:"level"`
}

// yamlLevel is the YAML representation of a level.
type yamlLevel struct {
	Name        string                 `yaml:"name"`
	FOVRange    *int                   `yaml:"fov_range"`
	MaxPathCost *uint                  `yaml:"max_path_cost"`
	Map         string                 `yaml:"map"`
	Monsters    map[string]yamlMonster `yaml:"monsters"`
}

// yamlMonster is the YAML representation of a monster kind, keyed by its map glyph.
type yamlMonster struct {
	Name string `yaml:"name"`
}

// yamlProgressFile stores the explored cells of one level.
type yamlProgressFile struct {
	Progress yamlProgress `yaml:"progress"`
}

type yamlProgress struct {
	Level    string   `yaml:"level"`
	Explored []string `yaml:"explored"`
}

const (
	exploredMark   = 'x'
	unexploredMark = '.'
)

// LoadFromFile reads and validates a single level YAML file.
//
// Precondition: path must point to a valid YAML level file.
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a level from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the level schema.
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromBytes(data []byte) (*Level, error) {
	var file yamlLevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}

	y := file.Level
	if y.Name == "" {
		return nil, fmt.Errorf("validating level: name must not be empty")
	}

	monsters := make(map[rune]string, len(y.Monsters))
	for key, m := range y.Monsters {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("validating level %q: monster key %q must be a single glyph", y.Name, key)
		}
		glyph, _ := utf8.DecodeRuneInString(key)
		if glyph == PlayerGlyph || strings.ContainsRune(".#+' ", glyph) {
			return nil, fmt.Errorf("validating level %q: monster glyph %q is reserved", y.Name, glyph)
		}
		name := m.Name
		if name == "" {
			name = key
		}
		monsters[glyph] = name
	}

	lvl, err := FromMap(y.Name, world.SplitMap(y.Map), monsters)
	if err != nil {
		return nil, fmt.Errorf("validating level: %w", err)
	}
	// Zero on a Level means "use the configured value", so a file that sets
	// either key must give a usable one.
	if y.FOVRange != nil {
		if *y.FOVRange < 1 {
			return nil, fmt.Errorf("validating level %q: fov_range must be >= 1 when set, got %d", y.Name, *y.FOVRange)
		}
		lvl.FOVRange = *y.FOVRange
	}
	if y.MaxPathCost != nil {
		if *y.MaxPathCost == 0 {
			return nil, fmt.Errorf("validating level %q: max_path_cost must be >= 1 when set", y.Name)
		}
		lvl.MaxPathCost = *y.MaxPathCost
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("validating level: %w", err)
	}
	return lvl, nil
}

// MarshalProgress encodes the level's explored cells as YAML, one row of
// 'x' (seen) and '.' (unseen) per map row.
//
// Postcondition: Returns YAML bytes or a non-nil error.
func (l *Level) MarshalProgress() ([]byte, error) {
	if l.Grid == nil {
		return nil, fmt.Errorf("encoding progress for level %q: no grid", l.Name)
	}
	w, h := l.Grid.Width(), l.Grid.Height()
	if l.Explored != nil && len(l.Explored) != w*h {
		return nil, fmt.Errorf("encoding progress for level %q: explored has %d cells, want %d", l.Name, len(l.Explored), w*h)
	}
	rows := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			i := y*w + x
			if l.Explored != nil && l.Explored[i] {
				sb.WriteRune(exploredMark)
			} else {
				sb.WriteRune(unexploredMark)
			}
		}
		rows[y] = sb.String()
	}

	out, err := yaml.Marshal(yamlProgressFile{Progress: yamlProgress{Level: l.Name, Explored: rows}})
	if err != nil {
		return nil, fmt.Errorf("encoding progress for level %q: %w", l.Name, err)
	}
	return out, nil
}

// UnmarshalProgress replaces the level's explored cells with those encoded in data.
//
// Precondition: data was produced by MarshalProgress for a level of the same name and size.
// Postcondition: On error the level is left unchanged.
func (l *Level) UnmarshalProgress(data []byte) error {
	var file yamlProgressFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing progress YAML: %w", err)
	}

	p := file.Progress
	if p.Level != l.Name {
		return fmt.Errorf("progress is for level %q, not %q", p.Level, l.Name)
	}

	w, h := l.Grid.Width(), l.Grid.Height()
	if len(p.Explored) != h {
		return fmt.Errorf("progress has %d rows, want %d", len(p.Explored), h)
	}

	explored := make([]bool, w*h)
	for y, row := range p.Explored {
		if utf8.RuneCountInString(row) != w {
			return fmt.Errorf("progress row %d has %d columns, want %d", y, utf8.RuneCountInString(row), w)
		}
		x := 0
		for _, r := range row {
			switch r {
			case exploredMark:
				explored[y*w+x] = true
			case unexploredMark:
			default:
				return fmt.Errorf("progress row %d has unexpected mark %q", y, r)
			}
			x++
		}
	}

	l.Explored = explored
	return nil
}

// SaveProgress writes the level's explored cells to path.
func (l *Level) SaveProgress(path string) error {
	data, err := l.MarshalProgress()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing progress file %s: %w", path, err)
	}
	return nil
}

// LoadProgress reads explored cells for the level from path.
func (l *Level) LoadProgress(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading progress file %s: %w", path, err)
	}
	return l.UnmarshalProgress(data)
}
