package overdue

import (
	"context"
	"database/sql"
	"time"

	"ELMS-backend/internal/platform/db"
)

// Candidate は延滞候補（発行済み・未フラグ・期限超過）の1件。
type Candidate struct {
	RequestID     int64
	RequestULID   string
	EquipmentName string
	EndDate       time.Time
}

type SweepStore interface {
	ListCandidates(ctx context.Context, today time.Time) ([]Candidate, error)
	// フラグ更新と通知作成を1Txで行う。フラグを立てられた（=まだ
	// 立っていなかった）場合のみ通知を書き、trueを返す。
	FlagAndNotify(ctx context.Context, c Candidate, message string, now time.Time) (bool, error)
}

type Store struct {
	db *sql.DB
}

func NewStore(d *sql.DB) *Store { return &Store{db: d} }

func (s *Store) ListCandidates(ctx context.Context, today time.Time) ([]Candidate, error) {
	const q = `
	SELECT r.request_id, r.request_ulid, e.name, r.end_date
	FROM borrow_requests r
	JOIN equipment e ON e.equipment_id = r.equipment_id
	WHERE r.status = 'ISSUED'
	  AND r.overdue_flag = 0
	  AND r.end_date < ?
	ORDER BY r.request_id`

	rows, err := s.db.QueryContext(ctx, q, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.RequestID, &c.RequestULID, &c.EquipmentName, &c.EndDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) FlagAndNotify(ctx context.Context, c Candidate, message string, now time.Time) (bool, error) {
	flagged := false
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// overdue_flag が条件に入っているので、並行するスイープや
		// 手動実行と競合しても二重フラグ・二重通知にはならない
		const uq = `
		UPDATE borrow_requests
		SET overdue_flag = 1, updated_at = ?
		WHERE request_id = ? AND overdue_flag = 0 AND status = 'ISSUED'`
		res, err := tx.ExecContext(ctx, uq, now, c.RequestID)
		if err != nil {
			return err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if aff == 0 {
			// 誰かが先にフラグを立てた。通知は書かない
			return nil
		}

		const nq = `
		INSERT INTO notifications (request_id, message, created_at, read_flag)
		VALUES (?, ?, ?, 0)`
		if _, err := tx.ExecContext(ctx, nq, c.RequestID, message, now); err != nil {
			return err
		}
		flagged = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return flagged, nil
}
