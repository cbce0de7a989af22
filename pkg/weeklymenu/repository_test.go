package weeklymenu

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/test_utils"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	container, openDB := test_utils.TestWithDB()
	testDB = openDB()
	code := m.Run()
	testDB.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	t.Cleanup(func() {
		_, err := testDB.Exec(context.Background(), "DELETE FROM weekly_menus")
		require.NoError(t, err)
	})
	return context.Background(), NewRepository(testDB)
}

func sampleMenu(ref string) WeeklyMenu {
	return WeeklyMenu{
		Ref:     ref,
		Name:    "Semana 12",
		Created: time.Now().UTC().Truncate(time.Second),
		Cells: []PlanCell{
			{
				Ref:         "WP1",
				MealPlanRef: "MP1",
				Day:         Monday,
				Slots:       SlotRecipes{Breakfast: "RE1", Lunch: "RE2"},
				Cost:        42.5,
				Calories:    170,
			},
			{
				Ref:         "WP2",
				MealPlanRef: "MP1",
				Day:         Tuesday,
				Slots:       SlotRecipes{Dinner: "RE3"},
				Cost:        8.25,
				Calories:    410.5,
			},
		},
	}
}

func TestRepositoryImpl_StoreAndGet(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	require.NoError(t, repo.Store(ctx, sampleMenu("WM1")))

	// then
	stored, err := repo.Get(ctx, "WM1")
	require.NoError(t, err)
	assert.Equal(t, "Semana 12", stored.Name)
	require.Len(t, stored.Cells, 2)
	assert.Equal(t, "WP1", stored.Cells[0].Ref)
	assert.Equal(t, Monday, stored.Cells[0].Day)
	assert.Equal(t, "RE1", stored.Cells[0].Slots.Breakfast)
	assert.Equal(t, 42.5, stored.Cells[0].Cost)
	assert.Equal(t, 410.5, stored.Cells[1].Calories)
}

func TestRepositoryImpl_Update_ReplacesCellsAtomically(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	menu := sampleMenu("WM1")
	require.NoError(t, repo.Store(ctx, menu))

	// when
	menu.Name = "Semana 13"
	menu.Cells = []PlanCell{
		{
			Ref:         "WP3",
			MealPlanRef: "MP2",
			Day:         Friday,
			Slots:       SlotRecipes{Lunch: "RE2"},
			Cost:        30,
			Calories:    120,
		},
	}
	require.NoError(t, repo.Update(ctx, menu))

	// then the old cell set is gone
	stored, err := repo.Get(ctx, "WM1")
	require.NoError(t, err)
	assert.Equal(t, "Semana 13", stored.Name)
	require.Len(t, stored.Cells, 1)
	assert.Equal(t, "WP3", stored.Cells[0].Ref)
}

func TestRepositoryImpl_Update_NotFound(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	err := repo.Update(ctx, sampleMenu("WM99"))
	assert.ErrorIs(t, err, ErrWeeklyMenuNotFound)
}

func TestRepositoryImpl_Delete_CascadesToCells(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, sampleMenu("WM1")))

	// when
	require.NoError(t, repo.Delete(ctx, "WM1"))

	// then
	_, err := repo.Get(ctx, "WM1")
	assert.ErrorIs(t, err, ErrWeeklyMenuNotFound)

	maxCell, err := repo.MaxCellRefSuffix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, maxCell)
}

func TestRepositoryImpl_MaxSuffixes(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	require.NoError(t, repo.Store(ctx, sampleMenu("WM7")))

	// when / then
	maxMenu, err := repo.MaxRefSuffix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, maxMenu)

	maxCell, err := repo.MaxCellRefSuffix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, maxCell)
}
