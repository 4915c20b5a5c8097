package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/pkg/models"
)

const userColumns = `id, display_name, preferred_name, personality, timezone_label, timezone_offset, stage, created_at, updated_at`

// GetUser returns a user by sender identifier
func (d *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := d.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	err := d.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = dbTime(user.CreatedAt)
	user.UpdatedAt = dbTime(user.UpdatedAt)

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :display_name, :preferred_name, :personality, :timezone_label, :timezone_offset, :stage, :created_at, :updated_at)
	`
	if _, err := d.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser modifies user settings
func (d *DB) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = dbTime(user.UpdatedAt)

	query := `
		UPDATE users SET
			display_name = :display_name,
			preferred_name = :preferred_name,
			personality = :personality,
			timezone_label = :timezone_label,
			timezone_offset = :timezone_offset,
			stage = :stage,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := d.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
