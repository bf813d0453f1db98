// Package coaching derives improvement suggestions from week profiles and records acknowledgements.
package coaching

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// suggestionNamespace scopes the name-based suggestion ids.
var suggestionNamespace = uuid.MustParse("6f1c2a3e-8a4b-5d7e-9f10-2b3c4d5e6f70")

// GenerateOptions controls a generation pass.
type GenerateOptions struct {
	// Weeks is how many of the most recent week profiles are considered.
	Weeks int
	// IncludeHistory keeps acknowledged suggestions, labelled with their status.
	IncludeHistory bool
}

// Generator turns week profiles into suggestions. It is pure: the same
// profiles and acks always yield the same suggestions.
type Generator struct {
	templates       map[string]Template
	savingsFraction decimal.Decimal
}

// NewGenerator creates a generator estimating savings as savingsFraction of a category's weekly CO2.
func NewGenerator(savingsFraction float64) *Generator {
	return &Generator{
		templates:       defaultTemplates,
		savingsFraction: decimal.NewFromFloat(savingsFraction),
	}
}

// SuggestionID derives the stable id of the suggestion for a user, category and ISO week.
func SuggestionID(userID, categoryID string, year, week int) string {
	name := userID + "|" + categoryID + "|" + aggregation.ISOWeekLabel(year, week)
	return uuid.NewSHA1(suggestionNamespace, []byte(name)).String()
}

// StarterSuggestionID is the id of the suggestion shown to users without any week profile.
func StarterSuggestionID(userID string) string {
	return uuid.NewSHA1(suggestionNamespace, []byte(userID+"|starter")).String()
}

// Generate emits one suggestion per bad top category of the most recent opts.Weeks profiles.
// acks maps suggestion ids to their terminal action and may be nil.
func (g *Generator) Generate(userID string, profiles []entity.WeekProfile, acks map[string]entity.AckAction, opts GenerateOptions) []entity.CoachingSuggestion {
	recent := MostRecent(profiles, opts.Weeks)

	var candidates []entity.CoachingSuggestion
	if len(profiles) == 0 {
		candidates = append(candidates, g.starter(userID))
	}

	for _, profile := range recent {
		for _, rollup := range profile.TopCategories {
			if rollup.EnvLabel != entity.EnvLabelBad {
				continue
			}
			candidates = append(candidates, g.fromRollup(userID, profile, rollup))
		}
	}

	suggestions := make([]entity.CoachingSuggestion, 0, len(candidates))
	for _, s := range candidates {
		action, acked := acks[s.SuggestionID]
		if acked && action.IsValid() {
			if !opts.IncludeHistory {
				continue
			}
			s.Status = string(action)
		}
		suggestions = append(suggestions, s)
	}

	return suggestions
}

// MostRecent returns up to n profiles, most recent first.
func MostRecent(profiles []entity.WeekProfile, n int) []entity.WeekProfile {
	sorted := append([]entity.WeekProfile(nil), profiles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeekStart.After(sorted[j].WeekStart)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (g *Generator) fromRollup(userID string, profile entity.WeekProfile, rollup entity.CategoryRollup) entity.CoachingSuggestion {
	tmpl, ok := g.templates[rollup.CategoryID]
	if !ok {
		tmpl = genericTemplate
	}
	title, description := tmpl.Render(rollup.Name)

	return entity.CoachingSuggestion{
		SuggestionID:       SuggestionID(userID, rollup.CategoryID, profile.Year, profile.Week),
		Title:              title,
		Description:        description,
		CategoryID:         rollup.CategoryID,
		CategoryName:       rollup.Name,
		EstimatedSavingsKg: rollup.TotalCO2e.Mul(g.savingsFraction).Round(2).InexactFloat64(),
		EnvLabel:           rollup.EnvLabel,
		Year:               profile.Year,
		Week:               profile.Week,
		Status:             entity.SuggestionStatusNew,
	}
}

func (g *Generator) starter(userID string) entity.CoachingSuggestion {
	return entity.CoachingSuggestion{
		SuggestionID:       StarterSuggestionID(userID),
		Title:              starterTemplate.Title,
		Description:        starterTemplate.Description,
		EstimatedSavingsKg: starterSavingsKg,
		EnvLabel:           entity.EnvLabelNeutral,
		Status:             entity.SuggestionStatusNew,
	}
}
