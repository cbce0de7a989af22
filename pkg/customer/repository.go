package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/ids"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Repository interface {
	Store(ctx context.Context, customer Customer) error
	GetAll(ctx context.Context, search string, limit, offset int) ([]Customer, error)
	Get(ctx context.Context, ref string) (Customer, error)
	Update(ctx context.Context, customer Customer) error
	Delete(ctx context.Context, ref string) (bool, error)
	MaxRefSuffix(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, customer Customer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO customers (
                    ref, name, last_name, email, phone, address, meal_plan_ref, notes, created
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(ctx, query,
		customer.Ref, customer.Name, customer.LastName, customer.Email,
		customer.Phone, customer.Address, customer.MealPlanRef, customer.Notes,
		customer.Created)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	if err = insertRestrictions(ctx, tx, customer.Ref, customer.RestrictedIngredients); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *RepositoryImpl) GetAll(ctx context.Context, search string, limit, offset int) ([]Customer, error) {
	query := `SELECT ref, name, last_name, email, phone, address, meal_plan_ref, notes, created
	          FROM customers`
	args := []interface{}{}
	if search != "" {
		query += " WHERE name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY last_name, name"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, ref string) (Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ref, name, last_name, email, phone, address, meal_plan_ref, notes, created
		 FROM customers WHERE ref = $1`, ref)
	customer, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return Customer{}, err
	}

	rows, err := r.db.Query(ctx,
		"SELECT ingredient_ref FROM customer_restrictions WHERE customer_ref = $1 ORDER BY ingredient_ref", ref)
	if err != nil {
		return Customer{}, fmt.Errorf("querying customer restrictions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ingredientRef string
		if err = rows.Scan(&ingredientRef); err != nil {
			return Customer{}, fmt.Errorf("scanning customer restriction: %w", err)
		}
		customer.RestrictedIngredients = append(customer.RestrictedIngredients, ingredientRef)
	}
	return customer, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, customer Customer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE customers SET
                    name = $2, last_name = $3, email = $4, phone = $5,
                    address = $6, meal_plan_ref = $7, notes = $8
				WHERE ref = $1`
	tag, err := tx.Exec(ctx, query,
		customer.Ref, customer.Name, customer.LastName, customer.Email,
		customer.Phone, customer.Address, customer.MealPlanRef, customer.Notes)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	_, err = tx.Exec(ctx, "DELETE FROM customer_restrictions WHERE customer_ref = $1", customer.Ref)
	if err != nil {
		return fmt.Errorf("clearing customer restrictions: %w", err)
	}
	if err = insertRestrictions(ctx, tx, customer.Ref, customer.RestrictedIngredients); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertRestrictions(ctx context.Context, tx pgx.Tx, customerRef string, ingredientRefs []string) error {
	for _, ingredientRef := range ingredientRefs {
		_, err := tx.Exec(ctx,
			"INSERT INTO customer_restrictions (customer_ref, ingredient_ref) VALUES ($1, $2)",
			customerRef, ingredientRef)
		if err != nil {
			return fmt.Errorf("inserting customer restriction: %w", err)
		}
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, ref string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM customers WHERE ref = $1", ref)
	if err != nil {
		return false, fmt.Errorf("deleting customer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) MaxRefSuffix(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT ref FROM customers")
	if err != nil {
		return 0, fmt.Errorf("querying customer refs: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var ref string
		if err = rows.Scan(&ref); err != nil {
			return 0, fmt.Errorf("scanning customer ref: %w", err)
		}
		if n, ok := ids.Suffix(RefPrefix, ref); ok && n > max {
			max = n
		}
	}
	return max, rows.Err()
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var customer Customer
	err := row.Scan(&customer.Ref, &customer.Name, &customer.LastName, &customer.Email,
		&customer.Phone, &customer.Address, &customer.MealPlanRef, &customer.Notes,
		&customer.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, err
	}
	if err != nil {
		return Customer{}, fmt.Errorf("scanning customer: %w", err)
	}
	return customer, nil
}
