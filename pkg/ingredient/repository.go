package ingredient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type Repository interface {
	Store(ctx context.Context, ingredient Ingredient) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]Ingredient, error)
	Get(ctx context.Context, ref string) (Ingredient, error)
	// GetByRefs returns the matching records; references that no longer exist
	// are simply absent from the result.
	GetByRefs(ctx context.Context, refs []string) ([]Ingredient, error)
	Update(ctx context.Context, ingredient Ingredient) (bool, error)
	Delete(ctx context.Context, ref string) (bool, error)
	// MaxRefSuffix scans all stored reference codes and returns the highest
	// numeric suffix, or 0 when the catalog is empty.
	MaxRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, ingredient Ingredient) error {
	query := `INSERT INTO ingredients (
                    ref,
                    name,
                    calories,
                    carbs,
                    protein,
                    fat,
                    cost_per_kilo,
                    created
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		ingredient.Ref,
		ingredient.Name,
		ingredient.Facts.Calories,
		ingredient.Facts.Carbs,
		ingredient.Facts.Protein,
		ingredient.Facts.Fat,
		ingredient.Facts.CostPerKilo,
		ingredient.Created,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]Ingredient, error) {
	query := `SELECT ref, name, calories, carbs, protein, fat, cost_per_kilo, created
               FROM ingredients
               WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
               ORDER BY created DESC
               LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		err := fmt.Errorf("could not query ingredients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var result []Ingredient
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ingredient)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return result, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (Ingredient, error) {
	query := `SELECT ref, name, calories, carbs, protein, fat, cost_per_kilo, created
               FROM ingredients WHERE ref = $1`

	row := r.db.QueryRow(ctx, query, ref)
	ingredient, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ingredient{}, ErrIngredientNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Ingredient{}, err
	}
	return ingredient, nil
}

func (r *RepositoryImpl) GetByRefs(ctx context.Context, refs []string) ([]Ingredient, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	query := `SELECT ref, name, calories, carbs, protein, fat, cost_per_kilo, created
               FROM ingredients WHERE ref = ANY($1)`

	rows, err := r.db.Query(ctx, query, refs)
	if err != nil {
		err := fmt.Errorf("could not query ingredients by refs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var result []Ingredient
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ingredient)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return result, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, ingredient Ingredient) (bool, error) {
	query := `UPDATE ingredients SET
                  name = $1,
                  calories = $2,
                  carbs = $3,
                  protein = $4,
                  fat = $5,
                  cost_per_kilo = $6
              WHERE ref = $7`

	result, err := r.db.Exec(ctx, query,
		ingredient.Name,
		ingredient.Facts.Calories,
		ingredient.Facts.Carbs,
		ingredient.Facts.Protein,
		ingredient.Facts.Fat,
		ingredient.Facts.CostPerKilo,
		ingredient.Ref,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	query := "DELETE FROM ingredients WHERE ref = $1"
	result, err := r.db.Exec(ctx, query, ref)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM ingredients")
	if err != nil {
		err := fmt.Errorf("could not query ingredient refs: %w", err)
		log.Error(err)
		return 0, err
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return 0, err
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating over rows: %w", err)
	}
	return max, nil
}

func scanIngredient(row pgx.Row) (Ingredient, error) {
	var ingredient Ingredient
	var created time.Time
	if err := row.Scan(
		&ingredient.Ref,
		&ingredient.Name,
		&ingredient.Facts.Calories,
		&ingredient.Facts.Carbs,
		&ingredient.Facts.Protein,
		&ingredient.Facts.Fat,
		&ingredient.Facts.CostPerKilo,
		&created,
	); err != nil {
		return Ingredient{}, err
	}
	ingredient.Created = created
	return ingredient, nil
}
