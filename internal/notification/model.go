package notification

import "time"

// Notification は notifications テーブルの1行を表す。
// 作成するのは延滞スイープだけ（追記専用）。
type Notification struct {
	ID        int64
	RequestID int64
	Message   string
	CreatedAt time.Time
	Read      bool
}
