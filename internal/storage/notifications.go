package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// Owners only ever see their most recent notifications.
const notificationLimit = 20

// NotificationRepository persists owner notifications in SQLite.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n core.Notification) (core.Notification, error) {
	isRead := 0
	if n.Read {
		isRead = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, owner_id, message, kind, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.OwnerID, n.Message, n.Kind, isRead, storeTime(n.CreatedAt))
	if err != nil {
		return core.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

func (r *NotificationRepository) FindByOwner(ctx context.Context, ownerID string) ([]core.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, message, kind, is_read, created_at
		 FROM notifications WHERE owner_id = ?
		 ORDER BY created_at DESC LIMIT ?`, ownerID, notificationLimit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE owner_id = ? AND is_read = 0`, ownerID)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE owner_id = ?`, ownerID)
	if err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}

func collectNotifications(rows *sql.Rows) ([]core.Notification, error) {
	var out []core.Notification
	for rows.Next() {
		var (
			n         core.Notification
			isRead    int
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Message, &n.Kind, &isRead, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Read = isRead == 1
		n.CreatedAt = loadTime(createdAt)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, nil
}
