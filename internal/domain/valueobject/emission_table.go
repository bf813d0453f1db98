// Package valueobject contains domain value objects for the Eco Impact system.
package valueobject

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

//go:embed emission_table.yaml
var defaultEmissionTable []byte

// EmissionThresholds bound the env label bands in kg CO2e per dollar.
type EmissionThresholds struct {
	GoodBelow float64 `yaml:"good_below"`
	BadAbove  float64 `yaml:"bad_above"`
}

type emissionTableFile struct {
	Thresholds EmissionThresholds `yaml:"thresholds"`
	Categories []struct {
		ID           string  `yaml:"id"`
		Name         string  `yaml:"name"`
		CO2PerDollar float64 `yaml:"co2_per_dollar"`
	} `yaml:"categories"`
	ReferencePopulation []float64 `yaml:"reference_population"`
}

// EmissionTable is the static category -> CO2 coefficient mapping.
// It is immutable after construction and safe for concurrent use.
type EmissionTable struct {
	thresholds EmissionThresholds
	byID       map[string]entity.CategoryInfo
	ordered    []entity.CategoryInfo
	population []float64
}

// DefaultEmissionTable parses the embedded table.
func DefaultEmissionTable() (*EmissionTable, error) {
	return ParseEmissionTable(defaultEmissionTable)
}

// LoadEmissionTable reads a table from path, or the embedded table when path is empty.
func LoadEmissionTable(path string) (*EmissionTable, error) {
	if path == "" {
		return DefaultEmissionTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read emission table: %w", err)
	}
	return ParseEmissionTable(data)
}

// ParseEmissionTable builds a table from its YAML form.
func ParseEmissionTable(data []byte) (*EmissionTable, error) {
	var file emissionTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse emission table: %w", err)
	}

	if file.Thresholds.GoodBelow > file.Thresholds.BadAbove {
		return nil, fmt.Errorf("good_below (%v) must not exceed bad_above (%v)", file.Thresholds.GoodBelow, file.Thresholds.BadAbove)
	}

	t := &EmissionTable{
		thresholds: file.Thresholds,
		byID:       make(map[string]entity.CategoryInfo, len(file.Categories)+1),
		population: append([]float64(nil), file.ReferencePopulation...),
	}

	for _, c := range file.Categories {
		if c.ID == "" {
			return nil, fmt.Errorf("emission table category without id")
		}
		if c.CO2PerDollar < 0 {
			return nil, fmt.Errorf("category %q has negative co2_per_dollar", c.ID)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.ID)
		}
		info := entity.CategoryInfo{
			CategoryID:   c.ID,
			Name:         c.Name,
			CO2PerDollar: c.CO2PerDollar,
			EnvLabel:     t.labelFor(c.CO2PerDollar),
		}
		t.byID[c.ID] = info
		t.ordered = append(t.ordered, info)
	}

	// The fallback category must always resolve.
	if _, ok := t.byID[entity.OtherCategoryID]; !ok {
		other := entity.CategoryInfo{
			CategoryID: entity.OtherCategoryID,
			Name:       "Other",
			EnvLabel:   entity.EnvLabelNeutral,
		}
		t.byID[other.CategoryID] = other
		t.ordered = append(t.ordered, other)
	}

	sort.SliceStable(t.ordered, func(i, j int) bool {
		return t.ordered[i].CategoryID < t.ordered[j].CategoryID
	})
	sort.Float64s(t.population)

	return t, nil
}

// labelFor maps a coefficient onto the good / neutral / bad bands.
func (t *EmissionTable) labelFor(co2PerDollar float64) entity.EnvLabel {
	switch {
	case co2PerDollar < t.thresholds.GoodBelow:
		return entity.EnvLabelGood
	case co2PerDollar > t.thresholds.BadAbove:
		return entity.EnvLabelBad
	default:
		return entity.EnvLabelNeutral
	}
}

// Lookup returns the category for id. Unknown and empty ids resolve to "other";
// the boolean reports whether id itself was known.
func (t *EmissionTable) Lookup(id string) (entity.CategoryInfo, bool) {
	if info, ok := t.byID[id]; ok {
		return info, true
	}
	return t.byID[entity.OtherCategoryID], false
}

// Categories returns all categories ordered by id.
func (t *EmissionTable) Categories() []entity.CategoryInfo {
	out := make([]entity.CategoryInfo, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Thresholds returns the label band thresholds.
func (t *EmissionTable) Thresholds() EmissionThresholds {
	return t.thresholds
}

// ReferencePopulation returns the sorted population avg_co2_per_dollar values.
func (t *EmissionTable) ReferencePopulation() []float64 {
	out := make([]float64, len(t.population))
	copy(out, t.population)
	return out
}
