package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts the user and, when supplied, its preference in one transaction.
func (r *PostgresUserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (id, email, first_name, last_name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, query, u.ID, u.Email, u.FirstName, u.LastName, u.Address, u.CreatedAt, u.UpdatedAt); err != nil {
		return models.User{}, err
	}

	if u.Preference != nil {
		query = `INSERT INTO user_preferences (id, user_id, receive_email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`
		p := u.Preference
		if _, err := tx.ExecContext(ctx, query, p.ID, u.ID, p.ReceiveEmail, p.CreatedAt, p.UpdatedAt); err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetAll(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query := `SELECT u.id, u.email, u.first_name, u.last_name, u.address, u.created_at, u.updated_at,
			p.id, p.user_id, p.receive_email, p.created_at, p.updated_at
		FROM users u
		LEFT JOIN user_preferences p ON p.user_id = u.id`

	if filter.Order == "oldest" {
		query += " ORDER BY u.created_at ASC"
	} else {
		query += " ORDER BY u.created_at DESC"
	}

	args := []any{}
	argIdx := 1
	if filter.Limit != nil && *filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *filter.Limit)
		argIdx++
	}
	if filter.Offset != nil && *filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *filter.Offset)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUserWithPreference(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	query := `SELECT u.id, u.email, u.first_name, u.last_name, u.address, u.created_at, u.updated_at,
			p.id, p.user_id, p.receive_email, p.created_at, p.updated_at
		FROM users u
		LEFT JOIN user_preferences p ON p.user_id = u.id
		WHERE u.id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUserWithPreference(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

// Update rewrites the user's editable fields and, when supplied, its preference.
func (r *PostgresUserRepository) Update(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	query := `UPDATE users SET email = $1, first_name = $2, last_name = $3, address = $4, updated_at = $5 WHERE id = $6`
	res, err := tx.ExecContext(ctx, query, u.Email, u.FirstName, u.LastName, u.Address, u.UpdatedAt, u.ID)
	if err != nil {
		return models.User{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.User{}, ErrUserNotFound
	}

	if u.Preference != nil {
		// Upsert: the preference may be created for the first time by a patch.
		query = `INSERT INTO user_preferences (id, user_id, receive_email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id) DO UPDATE SET receive_email = EXCLUDED.receive_email, updated_at = EXCLUDED.updated_at`
		p := u.Preference
		if _, err := tx.ExecContext(ctx, query, p.ID, u.ID, p.ReceiveEmail, p.CreatedAt, p.UpdatedAt); err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SavedProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	if _, err := r.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	query := `SELECT pr.id, pr.name, pr.description, pr.category, pr.price, pr.stock, pr.created_at, pr.updated_at
		FROM saved_products sp
		JOIN products pr ON pr.id = sp.product_id
		WHERE sp.user_id = $1
		ORDER BY pr.created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresUserRepository) SaveProduct(ctx context.Context, userID, productID uuid.UUID) ([]models.Product, error) {
	if _, err := r.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var exists bool
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	query := `INSERT INTO saved_products (user_id, product_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, productID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return r.SavedProducts(ctx, userID)
}

// scanUserWithPreference reads the users/user_preferences LEFT JOIN row shape.
func scanUserWithPreference(row interface{ Scan(dest ...any) error }) (models.User, error) {
	var u models.User
	var pID, pUserID uuid.NullUUID
	var pReceive sql.NullBool
	var pCreated, pUpdated sql.NullTime

	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Address, &u.CreatedAt, &u.UpdatedAt,
		&pID, &pUserID, &pReceive, &pCreated, &pUpdated)
	if err != nil {
		return models.User{}, err
	}

	if pID.Valid {
		u.Preference = &models.UserPreference{
			ID:           pID.UUID,
			UserID:       pUserID.UUID,
			ReceiveEmail: pReceive.Bool,
			CreatedAt:    pCreated.Time,
			UpdatedAt:    pUpdated.Time,
		}
	}
	return u, nil
}
