package coaching

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

func rollup(id string, label entity.EnvLabel, co2 string) entity.CategoryRollup {
	return entity.CategoryRollup{
		CategoryID: id,
		Name:       id,
		EnvLabel:   label,
		TotalCO2e:  decimal.RequireFromString(co2),
	}
}

func profile(year, week int, start string, top ...entity.CategoryRollup) entity.WeekProfile {
	d, _ := time.Parse("2006-01-02", start)
	return entity.WeekProfile{Year: year, Week: week, WeekStart: d, TopCategories: top}
}

func sampleProfiles() []entity.WeekProfile {
	return []entity.WeekProfile{
		profile(2024, 1, "2024-01-01", rollup("fuel", entity.EnvLabelBad, "42"), rollup("groceries", entity.EnvLabelNeutral, "9")),
		profile(2024, 3, "2024-01-15", rollup("flights", entity.EnvLabelBad, "80"), rollup("transit", entity.EnvLabelGood, "1")),
		profile(2024, 2, "2024-01-08", rollup("fast_fashion", entity.EnvLabelBad, "13"), rollup("gadgets", entity.EnvLabelBad, "10")),
	}
}

func suggestionIDs(s []entity.CoachingSuggestion) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		out = append(out, x.SuggestionID)
	}
	return out
}

func TestGenerator_Generate_OnlyBadCategoriesOfRecentWeeks(t *testing.T) {
	g := NewGenerator(0.2)

	got := g.Generate("u1", sampleProfiles(), nil, GenerateOptions{Weeks: 2})

	want := []struct {
		category string
		week     int
		savings  float64
	}{
		{"flights", 3, 16},
		{"fast_fashion", 2, 2.6},
		{"gadgets", 2, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Generate) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].CategoryID != w.category || got[i].Week != w.week || got[i].EstimatedSavingsKg != w.savings {
			t.Errorf("Generate()[%d] = (%s, W%d, %v), want (%s, W%d, %v)",
				i, got[i].CategoryID, got[i].Week, got[i].EstimatedSavingsKg, w.category, w.week, w.savings)
		}
		if got[i].Status != entity.SuggestionStatusNew {
			t.Errorf("Generate()[%d].Status = %q, want new", i, got[i].Status)
		}
		if got[i].EnvLabel != entity.EnvLabelBad {
			t.Errorf("Generate()[%d].EnvLabel = %q, want bad", i, got[i].EnvLabel)
		}
	}
}

func TestGenerator_Generate_Templates(t *testing.T) {
	g := NewGenerator(0.2)
	got := g.Generate("u1", sampleProfiles(), nil, GenerateOptions{Weeks: 2})

	if got[0].Title != defaultTemplates["flights"].Title {
		t.Errorf("flights title = %q, want category template", got[0].Title)
	}
	if got[2].Title != genericTemplate.Title {
		t.Errorf("gadgets title = %q, want generic template", got[2].Title)
	}
}

func TestGenerator_Generate_Idempotent(t *testing.T) {
	g := NewGenerator(0.2)
	first := suggestionIDs(g.Generate("u1", sampleProfiles(), nil, GenerateOptions{Weeks: 4}))
	second := suggestionIDs(g.Generate("u1", sampleProfiles(), nil, GenerateOptions{Weeks: 4}))

	if len(first) != len(second) {
		t.Fatalf("generated %d then %d suggestions", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("id[%d] changed from %s to %s", i, first[i], second[i])
		}
	}

	other := suggestionIDs(g.Generate("u2", sampleProfiles(), nil, GenerateOptions{Weeks: 4}))
	for i := range first {
		if first[i] == other[i] {
			t.Errorf("id[%d] shared between users", i)
		}
	}
}

func TestGenerator_Generate_Acks(t *testing.T) {
	g := NewGenerator(0.2)
	all := g.Generate("u1", sampleProfiles(), nil, GenerateOptions{Weeks: 4})
	dismissed := all[0].SuggestionID
	accepted := all[1].SuggestionID

	acks := map[string]entity.AckAction{
		dismissed: entity.AckActionDismissed,
		accepted:  entity.AckActionAccepted,
	}

	visible := g.Generate("u1", sampleProfiles(), acks, GenerateOptions{Weeks: 4})
	if len(visible) != len(all)-2 {
		t.Fatalf("len(visible) = %d, want %d", len(visible), len(all)-2)
	}
	for _, s := range visible {
		if s.SuggestionID == dismissed || s.SuggestionID == accepted {
			t.Errorf("acknowledged suggestion %s resurfaced", s.SuggestionID)
		}
	}

	history := g.Generate("u1", sampleProfiles(), acks, GenerateOptions{Weeks: 4, IncludeHistory: true})
	if len(history) != len(all) {
		t.Fatalf("len(history) = %d, want %d", len(history), len(all))
	}
	if history[0].Status != string(entity.AckActionDismissed) || history[1].Status != string(entity.AckActionAccepted) {
		t.Errorf("history statuses = [%s %s], want [dismissed accepted]", history[0].Status, history[1].Status)
	}
}

func TestGenerator_Generate_Starter(t *testing.T) {
	g := NewGenerator(0.2)

	got := g.Generate("u1", nil, nil, GenerateOptions{Weeks: 4})
	if len(got) != 1 || got[0].SuggestionID != StarterSuggestionID("u1") {
		t.Fatalf("Generate() = %v, want the starter suggestion", suggestionIDs(got))
	}

	dismissed := g.Generate("u1", nil, map[string]entity.AckAction{StarterSuggestionID("u1"): entity.AckActionDismissed}, GenerateOptions{Weeks: 4})
	if len(dismissed) != 0 {
		t.Errorf("dismissed starter resurfaced")
	}
}

func TestGenerator_Generate_NoBadCategories(t *testing.T) {
	g := NewGenerator(0.2)
	profiles := []entity.WeekProfile{
		profile(2024, 1, "2024-01-01", rollup("transit", entity.EnvLabelGood, "2")),
	}
	if got := g.Generate("u1", profiles, nil, GenerateOptions{Weeks: 4}); len(got) != 0 {
		t.Errorf("Generate() = %v, want none", suggestionIDs(got))
	}
}

func TestSuggestionID_DependsOnWeek(t *testing.T) {
	if SuggestionID("u1", "fuel", 2024, 1) == SuggestionID("u1", "fuel", 2024, 2) {
		t.Error("suggestion id does not depend on the week")
	}
	if SuggestionID("u1", "fuel", 2024, 1) != SuggestionID("u1", "fuel", 2024, 1) {
		t.Error("suggestion id is not deterministic")
	}
}
