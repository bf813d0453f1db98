// Package coaching derives improvement suggestions from week profiles and records acknowledgements.
package coaching

import "fmt"

// Template is the copy used for a suggestion. Description takes the category name.
type Template struct {
	Title       string
	Description string
}

// Render fills the category name into the description.
func (t Template) Render(categoryName string) (string, string) {
	return t.Title, fmt.Sprintf(t.Description, categoryName)
}

// defaultTemplates are keyed by category id.
var defaultTemplates = map[string]Template{
	"flights": {
		Title:       "Take one trip by rail",
		Description: "%s made up a big share of this week's footprint. Swapping one short-haul hop for a train or a video call cuts emissions quickly.",
	},
	"fuel": {
		Title:       "Combine your car trips",
		Description: "Your %s spend was among the week's heaviest emitters. Batch errands into one drive or bike the short ones.",
	},
	"fast_fashion": {
		Title:       "Try a thrift-first week",
		Description: "%s purchases carry a heavy footprint. Check secondhand shops or swap with friends before buying new.",
	},
	"electronics": {
		Title:       "Repair before you replace",
		Description: "%s are carbon-intensive to make. Look into a repair, a refurbished model or a trade-in program.",
	},
}

// genericTemplate is used for bad categories without a specific template.
var genericTemplate = Template{
	Title:       "Shrink high-impact purchases",
	Description: "Cut one %s purchase this week or switch to a greener option to shave emissions quickly.",
}

// starterTemplate is offered when a user has no transactions yet.
var starterTemplate = Template{
	Title:       "Add your first eco-positive transaction",
	Description: "Log a recent sustainable purchase to unlock tailored coaching.",
}

// starterSavingsKg is the nominal saving shown on the starter suggestion.
const starterSavingsKg = 1.0
