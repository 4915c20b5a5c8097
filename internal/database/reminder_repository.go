package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/remindbot/pkg/models"
)

const reminderColumns = `id, user_id, user_name, task, scheduled_at, local_display, completed, created_at`

// CreateReminder inserts a new reminder
func (d *DB) CreateReminder(ctx context.Context, rem *models.Reminder) error {
	rem.ScheduledAt = dbTime(rem.ScheduledAt)
	rem.CreatedAt = dbTime(rem.CreatedAt)

	query := `
		INSERT INTO reminders (` + reminderColumns + `)
		VALUES (:id, :user_id, :user_name, :task, :scheduled_at, :local_display, :completed, :created_at)
	`
	if _, err := d.db.NamedExecContext(ctx, query, rem); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// ListPending returns a user's open reminders scheduled after the given instant
func (d *DB) ListPending(ctx context.Context, userID string, after time.Time) ([]models.Reminder, error) {
	query := d.rebind(`
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE user_id = ?
		AND completed = ?
		AND scheduled_at > ?
		ORDER BY scheduled_at ASC
	`)
	var reminders []models.Reminder
	if err := d.db.SelectContext(ctx, &reminders, query, userID, false, dbTime(after)); err != nil {
		return nil, fmt.Errorf("failed to get pending reminders: %w", err)
	}
	return reminders, nil
}

// ListDue returns all open reminders whose time has come
func (d *DB) ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	query := d.rebind(`
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE completed = ?
		AND scheduled_at <= ?
		ORDER BY scheduled_at ASC
	`)
	var reminders []models.Reminder
	if err := d.db.SelectContext(ctx, &reminders, query, false, dbTime(now)); err != nil {
		return nil, fmt.Errorf("failed to get due reminders: %w", err)
	}
	return reminders, nil
}

// MarkComplete sets the completion flag once; later calls change nothing
func (d *DB) MarkComplete(ctx context.Context, id string) (bool, error) {
	query := d.rebind(`UPDATE reminders SET completed = ? WHERE id = ? AND completed = ?`)
	result, err := d.db.ExecContext(ctx, query, true, id, false)
	if err != nil {
		return false, fmt.Errorf("failed to complete reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListAll returns the whole reminder history
func (d *DB) ListAll(ctx context.Context) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders ORDER BY created_at ASC, id ASC`
	var reminders []models.Reminder
	if err := d.db.SelectContext(ctx, &reminders, query); err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	return reminders, nil
}
