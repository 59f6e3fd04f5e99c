package equipment

import (
	"database/sql"
	"time"
)

// Equipment は equipment テーブルの1行を表す。
// available_quantity は「今物理的に貸し出せる数」。承認済みの予約は
// 含まない（予約量の計算は borrow 側の重複合計クエリが担当）。
type Equipment struct {
	ID                int64
	Name              string
	Category          sql.NullString
	ConditionNote     sql.NullString
	Description       sql.NullString
	TotalQuantity     int
	AvailableQuantity int
	CreatedAt         time.Time
	UpdatedAt         sql.NullTime
}

// clampAvailable は available を [0, total] に丸める。
func clampAvailable(v, total int) int {
	if v < 0 {
		return 0
	}
	if v > total {
		return total
	}
	return v
}

// recalcAvailable は total 変更時の available 再計算ルール。
// 現在値に総数の増減分をそのまま加算し、範囲に丸める。
// 総数を貸出中の数より小さくした場合も黙って丸める（運用判断。
// エラーにはしない）。
func recalcAvailable(oldTotal, newTotal, currentAvailable int) int {
	return clampAvailable(currentAvailable+(newTotal-oldTotal), newTotal)
}
