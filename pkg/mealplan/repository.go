package mealplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrMealPlanNotFound = errors.New("meal plan not found")

type Repository interface {
	Store(ctx context.Context, plan MealPlan) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]MealPlan, error)
	Get(ctx context.Context, ref string) (MealPlan, error)
	Update(ctx context.Context, plan MealPlan) (bool, error)
	Delete(ctx context.Context, ref string) (bool, error)
	MaxRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, plan MealPlan) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO meal_plans (ref, name, description, created) VALUES ($1, $2, $3, $4)",
		plan.Ref, plan.Name, plan.Description, plan.Created)
	if err != nil {
		return fmt.Errorf("inserting meal plan: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]MealPlan, error) {
	query := "SELECT ref, name, description, created FROM meal_plans"
	args := []interface{}{}
	if search != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying meal plans: %w", err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		var plan MealPlan
		if err = rows.Scan(&plan.Ref, &plan.Name, &plan.Description, &plan.Created); err != nil {
			return nil, fmt.Errorf("scanning meal plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (MealPlan, error) {
	var plan MealPlan
	err := r.db.QueryRow(ctx,
		"SELECT ref, name, description, created FROM meal_plans WHERE ref = $1", ref).
		Scan(&plan.Ref, &plan.Name, &plan.Description, &plan.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return MealPlan{}, ErrMealPlanNotFound
	}
	if err != nil {
		return MealPlan{}, fmt.Errorf("querying meal plan: %w", err)
	}
	return plan, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, plan MealPlan) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE meal_plans SET name = $2, description = $3 WHERE ref = $1",
		plan.Ref, plan.Name, plan.Description)
	if err != nil {
		return false, fmt.Errorf("updating meal plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM meal_plans WHERE ref = $1", ref)
	if err != nil {
		return false, fmt.Errorf("deleting meal plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM meal_plans")
	if err != nil {
		return 0, fmt.Errorf("querying meal plan refs: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err = rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("scanning meal plan ref: %w", err)
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}
