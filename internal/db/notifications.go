package db

import (
	"context"
	"fmt"

	"homework-notifier/internal/models"
)

// CreateNotification stores one delivery attempt.
func (d *DB) CreateNotification(ctx context.Context, n models.Notification) error {
	query := `
        INSERT INTO homework_notifications (
            id, created_at, kind, homework, status, chat_id, text, delivered, error
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := d.Pool.Exec(ctx, query,
		n.ID, n.CreatedAt, n.Kind, n.Homework, n.Status,
		n.ChatID, n.Text, n.Delivered, n.Error)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// Publish implements the service sink contract.
func (d *DB) Publish(ctx context.Context, n models.Notification) error {
	return d.CreateNotification(ctx, n)
}

// GetRecentNotifications returns up to limit records, newest first.
func (d *DB) GetRecentNotifications(ctx context.Context, limit, offset int) ([]models.Notification, error) {
	query := `
        SELECT id, created_at, kind, homework, status, chat_id, text, delivered, error
        FROM homework_notifications
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := d.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID, &n.CreatedAt, &n.Kind, &n.Homework, &n.Status,
			&n.ChatID, &n.Text, &n.Delivered, &n.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	return notifications, nil
}
