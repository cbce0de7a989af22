package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = Catalog{
	"IG1": {Calories: 165, Carbs: 0, Protein: 31, Fat: 3.6, CostPerKilo: 80},
	"IG2": {Calories: 130, Carbs: 28, Protein: 2.7, Fat: 0.3, CostPerKilo: 25},
	"IG3": {Calories: 884, Carbs: 0, Protein: 0, Fat: 100, CostPerKilo: 120},
}

func TestResolveEntry(t *testing.T) {
	t.Run("scales nutrients by quantity over 100", func(t *testing.T) {
		totals, ok := ResolveEntry(Entry{IngredientRef: "IG1", Quantity: 250}, testCatalog)

		require.True(t, ok)
		assert.InDelta(t, 412.5, totals.Calories, 1e-9)
		assert.InDelta(t, 77.5, totals.Protein, 1e-9)
		assert.InDelta(t, 9.0, totals.Fat, 1e-9)
	})

	t.Run("cost is linear in quantity from cost per kilo", func(t *testing.T) {
		totals, ok := ResolveEntry(Entry{IngredientRef: "IG1", Quantity: 300}, testCatalog)

		require.True(t, ok)
		assert.InDelta(t, 24.0, totals.Cost, 1e-9)
	})

	t.Run("missing reference contributes zero without error", func(t *testing.T) {
		totals, ok := ResolveEntry(Entry{IngredientRef: "IG999", Quantity: 500}, testCatalog)

		assert.False(t, ok)
		assert.Equal(t, Totals{}, totals)
	})

	t.Run("zero quantity contributes zero", func(t *testing.T) {
		totals, ok := ResolveEntry(Entry{IngredientRef: "IG3", Quantity: 0}, testCatalog)

		require.True(t, ok)
		assert.Equal(t, Totals{}, totals)
	})
}

func TestRecipeTotals(t *testing.T) {
	t.Run("empty entry list yields all zeros", func(t *testing.T) {
		totals, unresolved := RecipeTotals(nil, testCatalog)

		assert.Equal(t, Totals{}, totals)
		assert.Empty(t, unresolved)
	})

	t.Run("sums contributions across entries", func(t *testing.T) {
		entries := []Entry{
			{IngredientRef: "IG1", Quantity: 200}, // 330 kcal, 62 protein, 7.2 fat, cost 16
			{IngredientRef: "IG2", Quantity: 150}, // 195 kcal, 42 carbs, 4.05 protein, 0.45 fat, cost 3.75
		}

		totals, unresolved := RecipeTotals(entries, testCatalog)

		assert.Empty(t, unresolved)
		assert.Equal(t, 19.75, totals.Cost)
		assert.Equal(t, 525.0, totals.Calories)
		assert.Equal(t, 42.0, totals.Carbs)
		assert.Equal(t, 66.05, totals.Protein)
		assert.Equal(t, 7.65, totals.Fat)
	})

	t.Run("dangling reference is skipped and reported", func(t *testing.T) {
		valid := []Entry{{IngredientRef: "IG1", Quantity: 200}}
		withDangling := append([]Entry{{IngredientRef: "IG404", Quantity: 999}}, valid...)

		validTotals, _ := RecipeTotals(valid, testCatalog)
		totals, unresolved := RecipeTotals(withDangling, testCatalog)

		assert.Equal(t, validTotals, totals)
		assert.Equal(t, []string{"IG404"}, unresolved)
	})

	t.Run("totals are additive over entry partitions", func(t *testing.T) {
		a := []Entry{{IngredientRef: "IG1", Quantity: 120}}
		b := []Entry{{IngredientRef: "IG2", Quantity: 80}, {IngredientRef: "IG3", Quantity: 15}}

		combined, _ := RecipeTotals(append(append([]Entry{}, a...), b...), testCatalog)
		totalsA, _ := RecipeTotals(a, testCatalog)
		totalsB, _ := RecipeTotals(b, testCatalog)

		assert.InDelta(t, totalsA.Cost+totalsB.Cost, combined.Cost, 0.01)
		assert.InDelta(t, totalsA.Calories+totalsB.Calories, combined.Calories, 0.01)
		assert.InDelta(t, totalsA.Carbs+totalsB.Carbs, combined.Carbs, 0.01)
		assert.InDelta(t, totalsA.Protein+totalsB.Protein, combined.Protein, 0.01)
		assert.InDelta(t, totalsA.Fat+totalsB.Fat, combined.Fat, 0.01)
	})

	t.Run("is idempotent over the same snapshot", func(t *testing.T) {
		entries := []Entry{
			{IngredientRef: "IG1", Quantity: 33.33},
			{IngredientRef: "IG3", Quantity: 12.5},
		}

		first, _ := RecipeTotals(entries, testCatalog)
		second, _ := RecipeTotals(entries, testCatalog)

		assert.Equal(t, first, second)
	})

	t.Run("rounds once at the end to 2 decimals", func(t *testing.T) {
		catalog := Catalog{
			"IG1": {Calories: 1, CostPerKilo: 1},
			"IG2": {Calories: 1, CostPerKilo: 1},
			"IG3": {Calories: 1, CostPerKilo: 1},
		}
		entries := []Entry{
			{IngredientRef: "IG1", Quantity: 0.333},
			{IngredientRef: "IG2", Quantity: 0.333},
			{IngredientRef: "IG3", Quantity: 0.333},
		}

		totals, _ := RecipeTotals(entries, catalog)

		// 3 × 0.00333 = 0.00999 kcal, rounded once -> 0.01;
		// rounding each contribution first would have produced 0.
		assert.Equal(t, 0.01, totals.Calories)
	})
}

func TestSumCell(t *testing.T) {
	totalsByRecipe := map[string]Totals{
		"RE1": {Cost: 50, Calories: 600},
		"RE2": {Cost: 120, Calories: 950},
	}

	t.Run("sums non-empty slots only", func(t *testing.T) {
		cell, unresolved := SumCell([]string{"RE1", "", "RE2", "", ""}, totalsByRecipe)

		assert.Empty(t, unresolved)
		assert.Equal(t, 170.0, cell.Cost)
		assert.Equal(t, 1550.0, cell.Calories)
	})

	t.Run("stale recipe reference contributes zero", func(t *testing.T) {
		cell, unresolved := SumCell([]string{"RE1", "RE404"}, totalsByRecipe)

		assert.Equal(t, []string{"RE404"}, unresolved)
		assert.Equal(t, 50.0, cell.Cost)
	})

	t.Run("all slots empty means zero", func(t *testing.T) {
		cell, unresolved := SumCell([]string{"", "", "", "", ""}, totalsByRecipe)

		assert.Empty(t, unresolved)
		assert.Equal(t, CellTotals{}, cell)
	})
}

func TestSumWeek(t *testing.T) {
	t.Run("adds up identical cells across weekdays", func(t *testing.T) {
		cell := CellTotals{Cost: 170, Calories: 1550}
		cells := []CellTotals{cell, cell, cell, cell, cell}

		week := SumWeek(cells)

		assert.Equal(t, 850.0, week.Cost)
		assert.Equal(t, 7750.0, week.Calories)
	})

	t.Run("no cells means zero", func(t *testing.T) {
		assert.Equal(t, CellTotals{}, SumWeek(nil))
	})
}
