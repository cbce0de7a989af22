package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

var ErrRecipeNotFound = errors.New("recipe not found")

type Repository interface {
	Store(ctx context.Context, recipe Recipe) error
	Get(ctx context.Context, ref string) (Recipe, error)
	GetAll(ctx context.Context, search string, limit, offset int) ([]Recipe, error)
	Update(ctx context.Context, recipe Recipe) (bool, error)
	UpdateImageURL(ctx context.Context, ref string, imageURL string) (bool, error)
	Delete(ctx context.Context, ref string) (bool, error)
	MaxRefSuffix(ctx context.Context) (int, error)
	// TotalsByRefs returns the stored totals of the requested recipes; stale
	// references are absent from the map.
	TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error)
	// RefsUsingIngredient lists recipes whose ingredient list mentions the
	// given catalog reference.
	RefsUsingIngredient(ctx context.Context, ingredientRef string) ([]string, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, recipe Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO recipes (
                    ref, name, description, image_url,
                    cost, calories, carbs, protein, fat, created
                ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = tx.Exec(ctx, query,
		recipe.Ref,
		recipe.Name,
		recipe.Description,
		recipe.ImageURL,
		recipe.Totals.Cost,
		recipe.Totals.Calories,
		recipe.Totals.Carbs,
		recipe.Totals.Protein,
		recipe.Totals.Fat,
		recipe.Created,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	if err := insertChildren(ctx, tx, recipe); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (Recipe, error) {
	query := `SELECT ref, name, description, image_url, cost, calories, carbs, protein, fat, created
               FROM recipes WHERE ref = $1`

	var recipe Recipe
	var created time.Time
	err := r.db.QueryRow(ctx, query, ref).Scan(
		&recipe.Ref,
		&recipe.Name,
		&recipe.Description,
		&recipe.ImageURL,
		&recipe.Totals.Cost,
		&recipe.Totals.Calories,
		&recipe.Totals.Carbs,
		&recipe.Totals.Protein,
		&recipe.Totals.Fat,
		&created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, ErrRecipeNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Recipe{}, err
	}
	recipe.Created = created

	recipe.Ingredients, err = r.getEntries(ctx, ref)
	if err != nil {
		return Recipe{}, err
	}
	recipe.StepRefs, err = r.getStepRefs(ctx, ref)
	if err != nil {
		return Recipe{}, err
	}
	return recipe, nil
}

func (r *RepositoryImpl) getEntries(ctx context.Context, ref string) ([]IngredientEntry, error) {
	query := `SELECT ingredient_ref, quantity, unit, restriction, substitute_ref
               FROM recipe_ingredients WHERE recipe_ref = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, ref)
	if err != nil {
		err := fmt.Errorf("could not query recipe ingredients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []IngredientEntry
	for rows.Next() {
		var entry IngredientEntry
		if err := rows.Scan(&entry.IngredientRef, &entry.Quantity, &entry.Unit, &entry.Restriction, &entry.SubstituteRef); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *RepositoryImpl) getStepRefs(ctx context.Context, ref string) ([]string, error) {
	query := `SELECT step_ref FROM recipe_steps WHERE recipe_ref = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, ref)
	if err != nil {
		err := fmt.Errorf("could not query recipe steps: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var stepRefs []string
	for rows.Next() {
		var stepRef string
		if err := rows.Scan(&stepRef); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		stepRefs = append(stepRefs, stepRef)
	}
	return stepRefs, rows.Err()
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]Recipe, error) {
	query := `SELECT ref, name, description, image_url, cost, calories, carbs, protein, fat, created
               FROM recipes
               WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
               ORDER BY created DESC
               LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		err := fmt.Errorf("could not query recipes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var result []Recipe
	for rows.Next() {
		var recipe Recipe
		var created time.Time
		if err := rows.Scan(
			&recipe.Ref,
			&recipe.Name,
			&recipe.Description,
			&recipe.ImageURL,
			&recipe.Totals.Cost,
			&recipe.Totals.Calories,
			&recipe.Totals.Carbs,
			&recipe.Totals.Protein,
			&recipe.Totals.Fat,
			&created,
		); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		recipe.Created = created
		result = append(result, recipe)
	}
	return result, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, recipe Recipe) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE recipes SET
                  name = $1,
                  description = $2,
                  image_url = $3,
                  cost = $4,
                  calories = $5,
                  carbs = $6,
                  protein = $7,
                  fat = $8
              WHERE ref = $9`
	result, err := tx.Exec(ctx, query,
		recipe.Name,
		recipe.Description,
		recipe.ImageURL,
		recipe.Totals.Cost,
		recipe.Totals.Calories,
		recipe.Totals.Carbs,
		recipe.Totals.Protein,
		recipe.Totals.Fat,
		recipe.Ref,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, "DELETE FROM recipe_ingredients WHERE recipe_ref = $1", recipe.Ref); err != nil {
		return false, fmt.Errorf("could not clear recipe ingredients: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM recipe_steps WHERE recipe_ref = $1", recipe.Ref); err != nil {
		return false, fmt.Errorf("could not clear recipe steps: %w", err)
	}
	if err := insertChildren(ctx, tx, recipe); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("could not commit transaction: %w", err)
	}
	return true, nil
}

func (r *RepositoryImpl) UpdateImageURL(ctx context.Context, ref string, imageURL string) (bool, error) {
	result, err := r.db.Exec(ctx, "UPDATE recipes SET image_url = $1 WHERE ref = $2", imageURL, ref)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM recipes WHERE ref = $1", ref)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM recipes")
	if err != nil {
		err := fmt.Errorf("could not query recipe refs: %w", err)
		log.Error(err)
		return 0, err
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("error scanning row: %w", err)
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}

func (r *RepositoryImpl) TotalsByRefs(ctx context.Context, refs []string) (map[string]nutrition.Totals, error) {
	if len(refs) == 0 {
		return map[string]nutrition.Totals{}, nil
	}
	query := `SELECT ref, cost, calories, carbs, protein, fat FROM recipes WHERE ref = ANY($1)`
	rows, err := r.db.Query(ctx, query, refs)
	if err != nil {
		err := fmt.Errorf("could not query recipe totals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]nutrition.Totals)
	for rows.Next() {
		var ref string
		var totals nutrition.Totals
		if err := rows.Scan(&ref, &totals.Cost, &totals.Calories, &totals.Carbs, &totals.Protein, &totals.Fat); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[ref] = totals
	}
	return result, rows.Err()
}

func (r *RepositoryImpl) RefsUsingIngredient(ctx context.Context, ingredientRef string) ([]string, error) {
	query := `SELECT DISTINCT recipe_ref FROM recipe_ingredients WHERE ingredient_ref = $1`
	rows, err := r.db.Query(ctx, query, ingredientRef)
	if err != nil {
		err := fmt.Errorf("could not query recipes by ingredient: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func insertChildren(ctx context.Context, tx pgx.Tx, recipe Recipe) error {
	entryQuery := `INSERT INTO recipe_ingredients (
                       recipe_ref, ingredient_ref, quantity, unit, restriction, substitute_ref, position
                   ) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, entry := range recipe.Ingredients {
		_, err := tx.Exec(ctx, entryQuery,
			recipe.Ref,
			entry.IngredientRef,
			entry.Quantity,
			entry.Unit,
			entry.Restriction,
			entry.SubstituteRef,
			i,
		)
		if err != nil {
			err := fmt.Errorf("could not insert recipe ingredient: %w", err)
			log.Error(err)
			return err
		}
	}

	stepQuery := `INSERT INTO recipe_steps (recipe_ref, step_ref, position) VALUES ($1, $2, $3)`
	for i, stepRef := range recipe.StepRefs {
		if _, err := tx.Exec(ctx, stepQuery, recipe.Ref, stepRef, i); err != nil {
			err := fmt.Errorf("could not insert recipe step: %w", err)
			log.Error(err)
			return err
		}
	}
	return nil
}
