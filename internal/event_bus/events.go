package event_bus

// IngredientUpdated is published after an ingredient's catalog record
// changes. Stored recipe totals are deliberately NOT recomputed ("evaluate
// as of last save"); subscribers use this to refresh denormalized ingredient
// names and to log which recipes now carry stale totals.
type IngredientUpdated struct {
	Ref  string
	Name string
}

// IngredientDeleted is published after an ingredient is removed from the
// catalog. Recipes referencing it keep their entries; aggregation fails open
// and the dangling reference contributes zero from the next recomputation on.
type IngredientDeleted struct {
	Ref string
}
