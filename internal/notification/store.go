package notification

import (
	"context"
	"database/sql"
)

type Store struct {
	db *sql.DB
}

func NewStore(d *sql.DB) *Store { return &Store{db: d} }

// ListUnread は未読通知を作成順（挿入順）で返す。
func (s *Store) ListUnread(ctx context.Context) ([]Notification, error) {
	const q = `
	SELECT notification_id, request_id, message, created_at, read_flag
	FROM notifications
	WHERE read_flag = 0
	ORDER BY created_at, notification_id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var readInt int
		if err := rows.Scan(&n.ID, &n.RequestID, &n.Message, &n.CreatedAt, &readInt); err != nil {
			return nil, err
		}
		n.Read = readInt != 0
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead は既読にした行数を返す（0なら対象なし）。
func (s *Store) MarkRead(ctx context.Context, id int64) (int64, error) {
	const q = `UPDATE notifications SET read_flag = 1 WHERE notification_id = ? AND read_flag = 0`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
