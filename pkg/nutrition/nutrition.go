package nutrition

import "math"

// Facts holds an ingredient's nutritional values per 100 grams and its cost
// per kilogram (or litre, for liquids sold by volume).
type Facts struct {
	Calories    float64
	Carbs       float64
	Protein     float64
	Fat         float64
	CostPerKilo float64
}

// Entry is one ingredient usage inside a recipe: an opaque catalog reference
// and a quantity. Quantities in grams and millilitres are both scaled on the
// same 100-gram basis; liquids are treated as having density 1.
type Entry struct {
	IngredientRef string
	Quantity      float64
}

// Totals is the five-field aggregate attached to a recipe.
type Totals struct {
	Cost     float64
	Calories float64
	Carbs    float64
	Protein  float64
	Fat      float64
}

// CellTotals is the reduced aggregate carried by a weekly menu plan cell.
// Only cost and calories are rolled up to the weekly level.
type CellTotals struct {
	Cost     float64
	Calories float64
}

// Catalog is a snapshot of ingredient facts keyed by ingredient reference.
type Catalog map[string]Facts

// Round2 rounds to 2 decimal places, ties away from zero. Both the form
// preview and the persisted totals go through this, so they always agree.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ResolveEntry scales one entry by its catalog facts. A reference missing
// from the catalog resolves to all-zero totals and resolved=false; callers
// may warn but the sums stay the same either way.
func ResolveEntry(entry Entry, catalog Catalog) (Totals, bool) {
	facts, ok := catalog[entry.IngredientRef]
	if !ok {
		return Totals{}, false
	}
	scale := entry.Quantity / 100
	return Totals{
		Cost:     facts.CostPerKilo / 1000 * entry.Quantity,
		Calories: facts.Calories * scale,
		Carbs:    facts.Carbs * scale,
		Protein:  facts.Protein * scale,
		Fat:      facts.Fat * scale,
	}, true
}

// RecipeTotals sums every entry's contribution and rounds the five sums to
// 2 decimal places once at the end. An empty entry list yields all zeros.
// The second return value lists references that did not resolve.
func RecipeTotals(entries []Entry, catalog Catalog) (Totals, []string) {
	var totals Totals
	var unresolved []string
	for _, entry := range entries {
		contribution, ok := ResolveEntry(entry, catalog)
		if !ok {
			unresolved = append(unresolved, entry.IngredientRef)
			continue
		}
		totals.Cost += contribution.Cost
		totals.Calories += contribution.Calories
		totals.Carbs += contribution.Carbs
		totals.Protein += contribution.Protein
		totals.Fat += contribution.Fat
	}
	totals.Cost = Round2(totals.Cost)
	totals.Calories = Round2(totals.Calories)
	totals.Carbs = Round2(totals.Carbs)
	totals.Protein = Round2(totals.Protein)
	totals.Fat = Round2(totals.Fat)
	return totals, unresolved
}

// SumCell computes one plan cell's cost and calories from its slot recipe
// references. Empty slots and references with no known totals contribute
// zero. Sums are returned at full precision; rounding happens only at the
// persistence or display boundary so error does not compound across cells.
func SumCell(slotRefs []string, totalsByRecipe map[string]Totals) (CellTotals, []string) {
	var cell CellTotals
	var unresolved []string
	for _, ref := range slotRefs {
		if ref == "" {
			continue
		}
		totals, ok := totalsByRecipe[ref]
		if !ok {
			unresolved = append(unresolved, ref)
			continue
		}
		cell.Cost += totals.Cost
		cell.Calories += totals.Calories
	}
	return cell, unresolved
}

// SumWeek adds up all plan cell totals of a weekly menu.
func SumWeek(cells []CellTotals) CellTotals {
	var week CellTotals
	for _, cell := range cells {
		week.Cost += cell.Cost
		week.Calories += cell.Calories
	}
	return week
}
