package borrow

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ELMS-backend/internal/platform/apierr"
	"ELMS-backend/internal/platform/db"
)

// TxStore は1トランザクション内で使える操作群。
// 遷移ロジック（service側）はこのインターフェース越しに行を触る。
type TxStore interface {
	GetRequestForUpdate(ctx context.Context, requestULID string) (*BorrowRequest, error)
	GetEquipment(ctx context.Context, equipmentID int64) (*EquipmentCounts, error)
	// 同一機材への承認・発行を直列化するための行ロック付き取得
	GetEquipmentForUpdate(ctx context.Context, equipmentID int64) (*EquipmentCounts, error)
	// APPROVED/ISSUED かつ期間が [start, end] と重なるリクエストの数量合計
	SumOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) (int, error)
	InsertRequest(ctx context.Context, r *BorrowRequest) error
	UpdateRequest(ctx context.Context, r *BorrowRequest) error
	AdjustAvailable(ctx context.Context, equipmentID int64, delta int) error
}

// Store は service が使う永続化面。SQL実装は SQLStore。
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
	ListByUser(ctx context.Context, userID int64) ([]RequestRow, error)
	ListByStatus(ctx context.Context, st Status) ([]RequestRow, error)
}

// 一覧表示用。機材名をJOINで持ってくる
type RequestRow struct {
	BorrowRequest
	EquipmentName string
}

type SQLStore struct {
	db *sql.DB
}

func NewStore(d *sql.DB) *SQLStore { return &SQLStore{db: d} }

func (s *SQLStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &txStore{tx: tx})
	})
}

// ===== tx-scoped implementation =====

type txStore struct {
	tx db.DBTX
}

const requestCols = `request_id, request_ulid, user_id, equipment_id, quantity_requested, start_date, end_date, status, overdue_flag, admin_comment, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }, r *BorrowRequest) error {
	var overdueInt int
	err := row.Scan(
		&r.ID, &r.RequestULID, &r.UserID, &r.EquipmentID, &r.QuantityRequested,
		&r.StartDate, &r.EndDate, &r.Status, &overdueInt, &r.AdminComment,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	r.Overdue = overdueInt != 0
	return nil
}

func (t *txStore) GetRequestForUpdate(ctx context.Context, requestULID string) (*BorrowRequest, error) {
	q := `SELECT ` + requestCols + ` FROM borrow_requests WHERE request_ulid = ? FOR UPDATE`
	var r BorrowRequest
	if err := scanRequest(t.tx.QueryRowContext(ctx, q, requestULID), &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.ErrNotFound("borrow request not found")
		}
		return nil, err
	}
	return &r, nil
}

func (t *txStore) getEquipment(ctx context.Context, equipmentID int64, lock bool) (*EquipmentCounts, error) {
	q := `SELECT equipment_id, name, total_quantity, available_quantity FROM equipment WHERE equipment_id = ?`
	if lock {
		q += ` FOR UPDATE`
	}
	var e EquipmentCounts
	err := t.tx.QueryRowContext(ctx, q, equipmentID).Scan(&e.ID, &e.Name, &e.TotalQuantity, &e.AvailableQuantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.ErrNotFound("equipment not found")
		}
		return nil, err
	}
	return &e, nil
}

func (t *txStore) GetEquipment(ctx context.Context, equipmentID int64) (*EquipmentCounts, error) {
	return t.getEquipment(ctx, equipmentID, false)
}

func (t *txStore) GetEquipmentForUpdate(ctx context.Context, equipmentID int64) (*EquipmentCounts, error) {
	return t.getEquipment(ctx, equipmentID, true)
}

func (t *txStore) SumOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) (int, error) {
	// 閉区間の重なり: NOT (end_date < start OR start_date > end)
	const q = `
	SELECT COALESCE(SUM(quantity_requested), 0)
	FROM borrow_requests
	WHERE equipment_id = ?
	  AND status IN ('APPROVED', 'ISSUED')
	  AND NOT (end_date < ? OR start_date > ?)`
	var sum int
	if err := t.tx.QueryRowContext(ctx, q, equipmentID, start, end).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func (t *txStore) InsertRequest(ctx context.Context, r *BorrowRequest) error {
	const q = `
	INSERT INTO borrow_requests
	(request_ulid, user_id, equipment_id, quantity_requested, start_date, end_date, status, overdue_flag, admin_comment, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q,
		r.RequestULID, r.UserID, r.EquipmentID, r.QuantityRequested,
		r.StartDate, r.EndDate, string(r.Status), r.AdminComment, r.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	r.ID = id
	return nil
}

func (t *txStore) UpdateRequest(ctx context.Context, r *BorrowRequest) error {
	const q = `
	UPDATE borrow_requests
	SET status = ?, admin_comment = ?, overdue_flag = ?, updated_at = ?
	WHERE request_id = ?`
	res, err := t.tx.ExecContext(ctx, q,
		string(r.Status), r.AdminComment, r.Overdue, r.UpdatedAt, r.ID,
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apierr.ErrInternal("failed to update borrow_requests row")
	}
	return nil
}

func (t *txStore) AdjustAvailable(ctx context.Context, equipmentID int64, delta int) error {
	const q = `
	UPDATE equipment
	SET available_quantity = available_quantity + ?, updated_at = NOW(6)
	WHERE equipment_id = ?`
	res, err := t.tx.ExecContext(ctx, q, delta, equipmentID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apierr.ErrInternal("failed to update equipment.available_quantity")
	}
	return nil
}

// ===== Queries =====

const listCols = `
	r.request_id, r.request_ulid, r.user_id, r.equipment_id, r.quantity_requested,
	r.start_date, r.end_date, r.status, r.overdue_flag, r.admin_comment,
	r.created_at, r.updated_at, e.name`

func (s *SQLStore) listRows(ctx context.Context, where string, args ...any) ([]RequestRow, error) {
	q := `SELECT ` + listCols + `
	FROM borrow_requests r
	JOIN equipment e ON e.equipment_id = r.equipment_id
	WHERE ` + where + `
	ORDER BY r.created_at DESC, r.request_id DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestRow
	for rows.Next() {
		var r RequestRow
		var overdueInt int
		if err := rows.Scan(
			&r.ID, &r.RequestULID, &r.UserID, &r.EquipmentID, &r.QuantityRequested,
			&r.StartDate, &r.EndDate, &r.Status, &overdueInt, &r.AdminComment,
			&r.CreatedAt, &r.UpdatedAt, &r.EquipmentName,
		); err != nil {
			return nil, err
		}
		r.Overdue = overdueInt != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListByUser(ctx context.Context, userID int64) ([]RequestRow, error) {
	return s.listRows(ctx, `r.user_id = ?`, userID)
}

func (s *SQLStore) ListByStatus(ctx context.Context, st Status) ([]RequestRow, error) {
	return s.listRows(ctx, `r.status = ?`, string(st))
}
