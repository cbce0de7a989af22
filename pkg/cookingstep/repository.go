package cookingstep

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrCookingStepNotFound = errors.New("cooking step not found")

type Repository interface {
	Store(ctx context.Context, step CookingStep) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]CookingStep, error)
	Get(ctx context.Context, ref string) (CookingStep, error)
	Update(ctx context.Context, step CookingStep) (bool, error)
	Delete(ctx context.Context, ref string) (bool, error)
	MaxRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, step CookingStep) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO cooking_steps (ref, name, description, created) VALUES ($1, $2, $3, $4)",
		step.Ref, step.Name, step.Description, step.Created)
	if err != nil {
		return fmt.Errorf("inserting cooking step: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]CookingStep, error) {
	query := "SELECT ref, name, description, created FROM cooking_steps"
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
		return nil, fmt.Errorf("querying cooking steps: %w", err)
	}
	defer rows.Close()

	var steps []CookingStep
	for rows.Next() {
		var step CookingStep
		if err = rows.Scan(&step.Ref, &step.Name, &step.Description, &step.Created); err != nil {
			return nil, fmt.Errorf("scanning cooking step: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (CookingStep, error) {
	var step CookingStep
	err := r.db.QueryRow(ctx,
		"SELECT ref, name, description, created FROM cooking_steps WHERE ref = $1", ref).
		Scan(&step.Ref, &step.Name, &step.Description, &step.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return CookingStep{}, ErrCookingStepNotFound
	}
	if err != nil {
		return CookingStep{}, fmt.Errorf("querying cooking step: %w", err)
	}
	return step, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, step CookingStep) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE cooking_steps SET name = $2, description = $3 WHERE ref = $1",
		step.Ref, step.Name, step.Description)
	if err != nil {
		return false, fmt.Errorf("updating cooking step: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM cooking_steps WHERE ref = $1", ref)
	if err != nil {
		return false, fmt.Errorf("deleting cooking step: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM cooking_steps")
	if err != nil {
		return 0, fmt.Errorf("querying cooking step refs: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err = rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("scanning cooking step ref: %w", err)
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}
