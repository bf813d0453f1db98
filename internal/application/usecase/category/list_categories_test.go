package category

import (
	"context"
	"testing"

	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
)

func TestListCategoriesUseCase_Execute(t *testing.T) {
	table, err := valueobject.DefaultEmissionTable()
	if err != nil {
		t.Fatalf("DefaultEmissionTable() error = %v", err)
	}
	uc := NewListCategoriesUseCase(table)

	all, err := uc.Execute(context.Background(), ListCategoriesInput{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(all.Categories) != len(table.Categories()) {
		t.Errorf("len = %d, want %d", len(all.Categories), len(table.Categories()))
	}
	if all.Thresholds != table.Thresholds() {
		t.Errorf("Thresholds = %+v", all.Thresholds)
	}

	bad, err := uc.Execute(context.Background(), ListCategoriesInput{EnvLabel: "bad"})
	if err != nil {
		t.Fatalf("Execute(bad) error = %v", err)
	}
	for _, c := range bad.Categories {
		if c.EnvLabel != entity.EnvLabelBad {
			t.Errorf("category %s has label %s", c.CategoryID, c.EnvLabel)
		}
	}
	if len(bad.Categories) == 0 {
		t.Error("default table has no bad categories")
	}

	if _, err := uc.Execute(context.Background(), ListCategoriesInput{EnvLabel: "green"}); !domainerror.IsValidation(err) {
		t.Errorf("Execute(green) error = %v, want validation error", err)
	}
}
