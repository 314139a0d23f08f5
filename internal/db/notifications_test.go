package db

import (
	"context"
	"os"
	"testing"
	"time"

	"homework-notifier/internal/models"
)

// Runs only against a real database: TEST_DB_DSN=postgres://... go test ./internal/db
func TestNotificationJournal(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	n := models.NewNotification(models.KindStatus, "42", "hello")
	n.Homework = "hw1"
	n.Status = "approved"
	n.Delivered = true
	if err := d.Publish(ctx, n); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	t.Cleanup(func() {
		_, _ = d.Pool.Exec(context.Background(), `DELETE FROM homework_notifications WHERE id = $1`, n.ID)
	})

	got, err := d.GetRecentNotifications(ctx, 50, 0)
	if err != nil {
		t.Fatalf("GetRecentNotifications: %v", err)
	}
	for _, g := range got {
		if g.ID == n.ID {
			if g.Text != "hello" || !g.Delivered || g.Homework != "hw1" {
				t.Errorf("stored record = %+v", g)
			}
			return
		}
	}
	t.Fatalf("record %s not found", n.ID)
}
