package weeklymenu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrWeeklyMenuNotFound = errors.New("weekly menu not found")

type Repository interface {
	Store(ctx context.Context, menu WeeklyMenu) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]WeeklyMenu, error)
	Get(ctx context.Context, ref string) (WeeklyMenu, error)
	// Update replaces the menu row and its full cell set in one transaction,
	// so a failed save never leaves a menu with a partial week.
	Update(ctx context.Context, menu WeeklyMenu) error
	Delete(ctx context.Context, ref string) error
	MaxRefSuffix(ctx context.Context) (int, error)
	MaxCellRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, menu WeeklyMenu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO weekly_menus (ref, name, created_at) VALUES ($1, $2, $3)",
		menu.Ref, menu.Name, menu.Created)
	if err != nil {
		return fmt.Errorf("inserting weekly menu: %w", err)
	}
	if err = insertCells(ctx, tx, menu.Ref, menu.Cells); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]WeeklyMenu, error) {
	query := "SELECT ref, name, created_at FROM weekly_menus"
	args := []interface{}{}
	if search != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying weekly menus: %w", err)
	}
	defer rows.Close()

	var menus []WeeklyMenu
	for rows.Next() {
		var menu WeeklyMenu
		if err = rows.Scan(&menu.Ref, &menu.Name, &menu.Created); err != nil {
			return nil, fmt.Errorf("scanning weekly menu: %w", err)
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (WeeklyMenu, error) {
	var menu WeeklyMenu
	err := r.db.QueryRow(ctx,
		"SELECT ref, name, created_at FROM weekly_menus WHERE ref = $1", ref).
		Scan(&menu.Ref, &menu.Name, &menu.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return WeeklyMenu{}, ErrWeeklyMenuNotFound
	}
	if err != nil {
		return WeeklyMenu{}, fmt.Errorf("querying weekly menu: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT ref, meal_plan_ref, day, breakfast_ref, morning_snack_ref, lunch_ref,
		        afternoon_snack_ref, dinner_ref, cost, calories
		 FROM weekly_menu_cells WHERE menu_ref = $1 ORDER BY position`, ref)
	if err != nil {
		return WeeklyMenu{}, fmt.Errorf("querying menu cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cell PlanCell
		err = rows.Scan(&cell.Ref, &cell.MealPlanRef, &cell.Day,
			&cell.Slots.Breakfast, &cell.Slots.MorningSnack, &cell.Slots.Lunch,
			&cell.Slots.AfternoonSnack, &cell.Slots.Dinner,
			&cell.Cost, &cell.Calories)
		if err != nil {
			return WeeklyMenu{}, fmt.Errorf("scanning menu cell: %w", err)
		}
		menu.Cells = append(menu.Cells, cell)
	}
	return menu, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, menu WeeklyMenu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE weekly_menus SET name = $2 WHERE ref = $1", menu.Ref, menu.Name)
	if err != nil {
		return fmt.Errorf("updating weekly menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWeeklyMenuNotFound
	}
	_, err = tx.Exec(ctx, "DELETE FROM weekly_menu_cells WHERE menu_ref = $1", menu.Ref)
	if err != nil {
		return fmt.Errorf("clearing menu cells: %w", err)
	}
	if err = insertCells(ctx, tx, menu.Ref, menu.Cells); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertCells(ctx context.Context, tx pgx.Tx, menuRef string, cells []PlanCell) error {
	for i, cell := range cells {
		_, err := tx.Exec(ctx,
			`INSERT INTO weekly_menu_cells (ref, menu_ref, meal_plan_ref, day, position,
			     breakfast_ref, morning_snack_ref, lunch_ref, afternoon_snack_ref, dinner_ref,
			     cost, calories)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			cell.Ref, menuRef, cell.MealPlanRef, cell.Day, i,
			cell.Slots.Breakfast, cell.Slots.MorningSnack, cell.Slots.Lunch,
			cell.Slots.AfternoonSnack, cell.Slots.Dinner,
			cell.Cost, cell.Calories)
		if err != nil {
			return fmt.Errorf("inserting menu cell: %w", err)
		}
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM weekly_menus WHERE ref = $1", ref)
	if err != nil {
		return fmt.Errorf("deleting weekly menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWeeklyMenuNotFound
	}
	return nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	return r.maxSuffix(ctx, "SELECT ref FROM weekly_menus", RefPrefix)
}

func (r *RepositoryImpl) MaxCellRefSuffix(ctx context.Context) (int, error) {
	return r.maxSuffix(ctx, "SELECT ref FROM weekly_menu_cells", CellRefPrefix)
}

func (r *RepositoryImpl) maxSuffix(ctx context.Context, query, prefix string) (int, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("querying refs: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err = rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("scanning ref: %w", err)
		}
		if n, ok := ids.Suffix(prefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}
