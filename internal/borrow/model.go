package borrow

import (
	"database/sql"
	"time"
)

// リクエストのライフサイクル:
// PENDING -> APPROVED -> ISSUED -> RETURNED
// PENDING / APPROVED -> REJECTED
// RETURNED と REJECTED は終端。
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusIssued   Status = "ISSUED"
	StatusReturned Status = "RETURNED"
	StatusRejected Status = "REJECTED"
)

// Rejectable: 在庫に触れる前（未発行）のリクエストのみ却下できる
func (s Status) Rejectable() bool {
	return s == StatusPending || s == StatusApproved
}

// BorrowRequest は borrow_requests テーブルの1行を表す。
// StartDate/EndDate は日付のみ（UTC 0時固定）。
type BorrowRequest struct {
	ID                int64
	RequestULID       string
	UserID            int64
	EquipmentID       int64
	QuantityRequested int
	StartDate         time.Time
	EndDate           time.Time
	Status            Status
	Overdue           bool
	AdminComment      sql.NullString
	CreatedAt         time.Time
	UpdatedAt         sql.NullTime
}

// EquipmentCounts は貸出処理から見た機材カウンタのビュー。
type EquipmentCounts struct {
	ID                int64
	Name              string
	TotalQuantity     int
	AvailableQuantity int
}

// Overlaps は閉区間同士の重なり判定。端点が接するだけでも重なり扱い。
// NOT (e1 < s2 OR s1 > e2)
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !(e1.Before(s2) || s1.After(e2))
}
