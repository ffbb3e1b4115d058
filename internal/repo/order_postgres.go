package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM orders ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Order, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM orders WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var o models.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	items, err := r.itemsByOrderID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *PostgresOrderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// CreateWithItems runs the placement write: the order row, its items and the
// stock decrements commit or roll back together. The decrement re-checks
// stock in SQL (stock >= qty) so two interleaved placements can never jointly
// overdraw a product, regardless of what the caller's pre-check saw.
func (r *PostgresOrderRepository) CreateWithItems(ctx context.Context, o models.Order, decrements map[uuid.UUID]int) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, o.ID, o.UserID, o.CreatedAt, o.UpdatedAt); err != nil {
		return models.Order{}, err
	}

	query = `INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, query, item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.CreatedAt); err != nil {
			return models.Order{}, err
		}
	}

	query = `UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3 AND stock >= $1`
	for productID, qty := range decrements {
		res, err := tx.ExecContext(ctx, query, qty, o.UpdatedAt, productID)
		if err != nil {
			return models.Order{}, err
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			return models.Order{}, ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepository) Update(ctx context.Context, o models.Order) (models.Order, error) {
	query := `UPDATE orders SET user_id = $1, updated_at = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, o.UserID, o.UpdatedAt, o.ID)
	if err != nil {
		return models.Order{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) itemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, unit_price, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
