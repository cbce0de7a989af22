package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrDeliveryOptionNotFound = errors.New("delivery option not found")

type Repository interface {
	Store(ctx context.Context, option DeliveryOption) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]DeliveryOption, error)
	Get(ctx context.Context, ref string) (DeliveryOption, error)
	Update(ctx context.Context, option DeliveryOption) (bool, error)
	Delete(ctx context.Context, ref string) (bool, error)
	MaxRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, option DeliveryOption) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO delivery_options (ref, name, description, cost, created) VALUES ($1, $2, $3, $4, $5)",
		option.Ref, option.Name, option.Description, option.Cost, option.Created)
	if err != nil {
		return fmt.Errorf("inserting delivery option: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]DeliveryOption, error) {
	query := "SELECT ref, name, description, cost, created FROM delivery_options"
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
		return nil, fmt.Errorf("querying delivery options: %w", err)
	}
	defer rows.Close()

	var options []DeliveryOption
	for rows.Next() {
		var option DeliveryOption
		err = rows.Scan(&option.Ref, &option.Name, &option.Description,
			&option.Cost, &option.Created)
		if err != nil {
			return nil, fmt.Errorf("scanning delivery option: %w", err)
		}
		options = append(options, option)
	}
	return options, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (DeliveryOption, error) {
	var option DeliveryOption
	err := r.db.QueryRow(ctx,
		"SELECT ref, name, description, cost, created FROM delivery_options WHERE ref = $1", ref).
		Scan(&option.Ref, &option.Name, &option.Description, &option.Cost, &option.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return DeliveryOption{}, ErrDeliveryOptionNotFound
	}
	if err != nil {
		return DeliveryOption{}, fmt.Errorf("querying delivery option: %w", err)
	}
	return option, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, option DeliveryOption) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE delivery_options SET name = $2, description = $3, cost = $4 WHERE ref = $1",
		option.Ref, option.Name, option.Description, option.Cost)
	if err != nil {
		return false, fmt.Errorf("updating delivery option: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM delivery_options WHERE ref = $1", ref)
	if err != nil {
		return false, fmt.Errorf("deleting delivery option: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM delivery_options")
	if err != nil {
		return 0, fmt.Errorf("querying delivery option refs: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err = rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("scanning delivery option ref: %w", err)
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}
