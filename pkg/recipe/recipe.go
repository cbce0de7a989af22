package recipe

import (
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

// RefPrefix is the reference code prefix for recipes ("RE12").
const RefPrefix = "RE"

type Unit string

const (
	UnitGrams       Unit = "g"
	UnitMilliliters Unit = "ml"
)

// RestrictionAction describes how a dietary restriction is handled for one
// ingredient entry in the kitchen. It is display metadata: the aggregation
// always sums the original entry's ingredient, never the substitute.
type RestrictionAction string

const (
	RestrictionNone       RestrictionAction = ""
	RestrictionBlock      RestrictionAction = "block"
	RestrictionRemove     RestrictionAction = "remove"
	RestrictionIgnore     RestrictionAction = "ignore"
	RestrictionSubstitute RestrictionAction = "substitute"
)

type IngredientEntry struct {
	IngredientRef string
	Quantity      float64
	Unit          Unit
	Restriction   RestrictionAction
	SubstituteRef string
}

type Recipe struct {
	Ref         string
	Name        string
	Description string
	ImageURL    string
	Ingredients []IngredientEntry
	// StepRefs lists cooking step references in preparation order.
	StepRefs []string
	// Totals holds the cost/nutrition aggregate computed from the catalog as
	// of the last save. Later catalog edits do not invalidate it.
	Totals  nutrition.Totals
	Created time.Time
}

// toEntries maps recipe entries to aggregation inputs. The declared unit and
// the restriction metadata are dropped on purpose: both grams and millilitres
// scale on the 100-gram basis, and substitutions never change the math.
func toEntries(entries []IngredientEntry) []nutrition.Entry {
	result := make([]nutrition.Entry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, nutrition.Entry{
			IngredientRef: entry.IngredientRef,
			Quantity:      entry.Quantity,
		})
	}
	return result
}
