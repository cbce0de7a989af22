package recipe

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/event_bus"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

var ctx = context.Background()

// catalogStub serves a mutable facts snapshot, standing in for the
// ingredient service.
type catalogStub struct {
	catalog nutrition.Catalog
}

func (c *catalogStub) Catalog(ctx context.Context, refs []string) (nutrition.Catalog, error) {
	result := make(nutrition.Catalog)
	for _, ref := range refs {
		if facts, ok := c.catalog[ref]; ok {
			result[ref] = facts
		}
	}
	return result, nil
}

type imageStoreStub struct {
	uploads map[string]string
}

func (s *imageStoreStub) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if s.uploads == nil {
		s.uploads = make(map[string]string)
	}
	s.uploads[key] = contentType
	return "https://images.test/" + key, nil
}

func (s *imageStoreStub) Delete(ctx context.Context, key string) error {
	delete(s.uploads, key)
	return nil
}

var repoStub = NewRepositoryStub()
var catalog = &catalogStub{}
var images = &imageStoreStub{}
var eventBus = event_bus.NewEventBus()

var service Service

func setup(t *testing.T) func() {
	catalog.catalog = nutrition.Catalog{
		"IG1": {Calories: 165, Protein: 31, Fat: 3.6, CostPerKilo: 80},
		"IG2": {Calories: 130, Carbs: 28, Protein: 2.7, Fat: 0.3, CostPerKilo: 25},
	}
	service = NewService(repoStub, catalog, images, eventBus)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("computes totals from the catalog snapshot", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Recipe{
			Name: "Pollo con arroz",
			Ingredients: []IngredientEntry{
				{IngredientRef: "IG1", Quantity: 250, Unit: UnitGrams},
				{IngredientRef: "IG2", Quantity: 150, Unit: UnitGrams},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "RE1", created.Ref)
		// IG1: 412.5 kcal, cost 20; IG2: 195 kcal, cost 3.75
		assert.Equal(t, 23.75, created.Totals.Cost)
		assert.Equal(t, 607.5, created.Totals.Calories)
	})

	t.Run("empty ingredient list yields all-zero totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Recipe{Name: "Vacia"})

		require.NoError(t, err)
		assert.Equal(t, nutrition.Totals{}, created.Totals)
	})

	t.Run("dangling ingredient reference contributes zero without failing", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Recipe{
			Name: "Con fantasma",
			Ingredients: []IngredientEntry{
				{IngredientRef: "IG1", Quantity: 100, Unit: UnitGrams},
				{IngredientRef: "IG404", Quantity: 500, Unit: UnitGrams},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 165.0, created.Totals.Calories)
		assert.Equal(t, 8.0, created.Totals.Cost)
	})

	t.Run("restriction metadata never alters the totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		plain, err := service.Create(ctx, Recipe{
			Name: "Sin restricciones",
			Ingredients: []IngredientEntry{
				{IngredientRef: "IG1", Quantity: 200, Unit: UnitGrams},
			},
		})
		require.NoError(t, err)

		restricted, err := service.Create(ctx, Recipe{
			Name: "Con sustituto",
			Ingredients: []IngredientEntry{
				{IngredientRef: "IG1", Quantity: 200, Unit: UnitGrams, Restriction: RestrictionSubstitute, SubstituteRef: "IG2"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, plain.Totals, restricted.Totals)
	})

	t.Run("millilitres scale the same as grams", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		grams, err := service.Create(ctx, Recipe{
			Name:        "En gramos",
			Ingredients: []IngredientEntry{{IngredientRef: "IG2", Quantity: 120, Unit: UnitGrams}},
		})
		require.NoError(t, err)

		millilitres, err := service.Create(ctx, Recipe{
			Name:        "En mililitros",
			Ingredients: []IngredientEntry{{IngredientRef: "IG2", Quantity: 120, Unit: UnitMilliliters}},
		})
		require.NoError(t, err)

		assert.Equal(t, grams.Totals, millilitres.Totals)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("recomputes totals from the current catalog", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Recipe{
			Name:        "Pollo",
			Ingredients: []IngredientEntry{{IngredientRef: "IG1", Quantity: 100, Unit: UnitGrams}},
		})
		require.NoError(t, err)
		require.Equal(t, 8.0, created.Totals.Cost)

		catalog.catalog["IG1"] = nutrition.Facts{Calories: 165, Protein: 31, Fat: 3.6, CostPerKilo: 100}

		updated, err := service.Update(ctx, created)

		require.NoError(t, err)
		assert.Equal(t, 10.0, updated.Totals.Cost)
	})

	t.Run("returns not found for an unknown reference", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Update(ctx, Recipe{Ref: "RE99", Name: "Fantasma"})

		require.ErrorIs(t, err, ErrRecipeNotFound)
	})
}

func TestServiceImpl_Duplicate(t *testing.T) {
	t.Run("copies fields and recomputes totals against the current catalog", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		original, err := service.Create(ctx, Recipe{
			Name:        "Pollo",
			Description: "Con arroz",
			Ingredients: []IngredientEntry{{IngredientRef: "IG1", Quantity: 300, Unit: UnitGrams}},
			StepRefs:    []string{"CS1", "CS2"},
		})
		require.NoError(t, err)
		require.Equal(t, 24.0, original.Totals.Cost)

		// Price changed since the original was saved.
		catalog.catalog["IG1"] = nutrition.Facts{Calories: 165, Protein: 31, Fat: 3.6, CostPerKilo: 90}

		duplicate, err := service.Duplicate(ctx, original.Ref)

		require.NoError(t, err)
		assert.Equal(t, "Pollo (Copia)", duplicate.Name)
		assert.Equal(t, "Con arroz", duplicate.Description)
		assert.Equal(t, original.Ingredients, duplicate.Ingredients)
		assert.Equal(t, original.StepRefs, duplicate.StepRefs)
		assert.NotEqual(t, original.Ref, duplicate.Ref)
		assert.Equal(t, 27.0, duplicate.Totals.Cost)

		stored, err := repoStub.Get(ctx, original.Ref)
		require.NoError(t, err)
		assert.Equal(t, 24.0, stored.Totals.Cost, "the original keeps its stored totals")
	})

	t.Run("returns not found for an unknown reference", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Duplicate(ctx, "RE99")

		require.ErrorIs(t, err, ErrRecipeNotFound)
	})
}

func TestServiceImpl_Preview(t *testing.T) {
	t.Run("matches what the save path persists", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		entries := []IngredientEntry{
			{IngredientRef: "IG1", Quantity: 250, Unit: UnitGrams},
			{IngredientRef: "IG2", Quantity: 150, Unit: UnitGrams},
		}

		previewed, unresolved, err := service.Preview(ctx, entries)
		require.NoError(t, err)
		require.Empty(t, unresolved)

		saved, err := service.Create(ctx, Recipe{Name: "Guardada", Ingredients: entries})
		require.NoError(t, err)

		assert.Equal(t, previewed, saved.Totals)
	})

	t.Run("reports unresolved references", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, unresolved, err := service.Preview(ctx, []IngredientEntry{
			{IngredientRef: "IG404", Quantity: 100, Unit: UnitGrams},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"IG404"}, unresolved)
	})
}

func TestServiceImpl_AttachImage(t *testing.T) {
	t.Run("uploads and stores the image url", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Recipe{Name: "Con foto"})
		require.NoError(t, err)

		url, err := service.AttachImage(ctx, created.Ref, "plato.jpg", "image/jpeg", strings.NewReader("fake-bytes"))

		require.NoError(t, err)
		assert.Contains(t, url, "recipes/"+created.Ref+"/")
		assert.Contains(t, url, ".jpg")

		stored, err := repoStub.Get(ctx, created.Ref)
		require.NoError(t, err)
		assert.Equal(t, url, stored.ImageURL)
	})

	t.Run("returns not found for an unknown recipe", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AttachImage(ctx, "RE99", "plato.jpg", "image/jpeg", strings.NewReader("x"))

		require.ErrorIs(t, err, ErrRecipeNotFound)
	})
}
