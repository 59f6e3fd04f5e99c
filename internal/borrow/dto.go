package borrow

import "time"

const dateLayout = "2006-01-02"

type CreateBorrowRequest struct {
	EquipmentID int64 `json:"equipment_id" binding:"required"`
	Quantity    int   `json:"quantity" binding:"required"`
	// "2006-01-02" 形式（DATE）
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// approve / reject 共通のコメント付きリクエスト
type DecisionRequest struct {
	Comment *string `json:"comment,omitempty"`
}

type BorrowResponse struct {
	RequestULID   string     `json:"request_ulid"`
	UserID        int64      `json:"user_id"`
	EquipmentID   int64      `json:"equipment_id"`
	EquipmentName string     `json:"equipment_name,omitempty"`
	Quantity      int        `json:"quantity"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Status        Status     `json:"status"`
	Overdue       bool       `json:"overdue"`
	AdminComment  *string    `json:"admin_comment,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func buildResponse(r *BorrowRequest, equipmentName string) BorrowResponse {
	resp := BorrowResponse{
		RequestULID:   r.RequestULID,
		UserID:        r.UserID,
		EquipmentID:   r.EquipmentID,
		EquipmentName: equipmentName,
		Quantity:      r.QuantityRequested,
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		Status:        r.Status,
		Overdue:       r.Overdue,
		CreatedAt:     r.CreatedAt,
	}
	if r.AdminComment.Valid {
		resp.AdminComment = &r.AdminComment.String
	}
	if r.UpdatedAt.Valid {
		resp.UpdatedAt = &r.UpdatedAt.Time
	}
	return resp
}
