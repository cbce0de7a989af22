package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrContainerNotFound = errors.New("food container not found")

type Repository interface {
	Store(ctx context.Context, container FoodContainer) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]FoodContainer, error)
	Get(ctx context.Context, ref string) (FoodContainer, error)
	Update(ctx context.Context, container FoodContainer) (bool, error)
	Delete(ctx context.Context, ref string) (bool, error)
	MaxRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, container FoodContainer) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO containers (ref, name, description, cost, created) VALUES ($1, $2, $3, $4, $5)",
		container.Ref, container.Name, container.Description, container.Cost, container.Created)
	if err != nil {
		return fmt.Errorf("inserting food container: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]FoodContainer, error) {
	query := "SELECT ref, name, description, cost, created FROM containers"
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
		return nil, fmt.Errorf("querying food containers: %w", err)
	}
	defer rows.Close()

	var containers []FoodContainer
	for rows.Next() {
		var container FoodContainer
		err = rows.Scan(&container.Ref, &container.Name, &container.Description,
			&container.Cost, &container.Created)
		if err != nil {
			return nil, fmt.Errorf("scanning food container: %w", err)
		}
		containers = append(containers, container)
	}
	return containers, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (FoodContainer, error) {
	var container FoodContainer
	err := r.db.QueryRow(ctx,
		"SELECT ref, name, description, cost, created FROM containers WHERE ref = $1", ref).
		Scan(&container.Ref, &container.Name, &container.Description,
			&container.Cost, &container.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return FoodContainer{}, ErrContainerNotFound
	}
	if err != nil {
		return FoodContainer{}, fmt.Errorf("querying food container: %w", err)
	}
	return container, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, container FoodContainer) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE containers SET name = $2, description = $3, cost = $4 WHERE ref = $1",
		container.Ref, container.Name, container.Description, container.Cost)
	if err != nil {
		return false, fmt.Errorf("updating food container: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM containers WHERE ref = $1", ref)
	if err != nil {
		return false, fmt.Errorf("deleting food container: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM containers")
	if err != nil {
		return 0, fmt.Errorf("querying food container refs: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err = rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("scanning food container ref: %w", err)
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}
