package notification

import (
	"context"
	"database/sql"
	"time"

	"ELMS-backend/internal/platform/apierr"
)

type NotificationStore interface {
	ListUnread(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id int64) (int64, error)
}

type Service struct {
	store NotificationStore
}

func NewService(d *sql.DB) *Service { return &Service{store: NewStore(d)} }

func NewServiceWithStore(st NotificationStore) *Service { return &Service{store: st} }

type NotificationResponse struct {
	NotificationID int64     `json:"notification_id"`
	RequestID      int64     `json:"request_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	Read           bool      `json:"read"`
}

func (s *Service) ListUnread(ctx context.Context) ([]NotificationResponse, error) {
	items, err := s.store.ListUnread(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			NotificationID: n.ID,
			RequestID:      n.RequestID,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
			Read:           n.Read,
		})
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return apierr.ErrInvalid("notification_id must be > 0")
	}
	n, err := s.store.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierr.ErrNotFound("unread notification not found")
	}
	return nil
}
