package equipment

import "time"

type CreateEquipmentRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      *string `json:"category,omitempty"`
	ConditionNote *string `json:"condition_note,omitempty"`
	Description   *string `json:"description,omitempty"`
	TotalQuantity int     `json:"total_quantity"`
	// 省略時は total_quantity と同じ値になる
	AvailableQuantity *int `json:"available_quantity,omitempty"`
}

// 部分更新。nil のフィールドは変更しない
type UpdateEquipmentRequest struct {
	Name          *string `json:"name,omitempty"`
	Category      *string `json:"category,omitempty"`
	ConditionNote *string `json:"condition_note,omitempty"`
	Description   *string `json:"description,omitempty"`
	TotalQuantity *int    `json:"total_quantity,omitempty"`
}

type EquipmentResponse struct {
	EquipmentID       int64      `json:"equipment_id"`
	Name              string     `json:"name"`
	Category          *string    `json:"category,omitempty"`
	ConditionNote     *string    `json:"condition_note,omitempty"`
	Description       *string    `json:"description,omitempty"`
	TotalQuantity     int        `json:"total_quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func buildResponse(e *Equipment) EquipmentResponse {
	r := EquipmentResponse{
		EquipmentID:       e.ID,
		Name:              e.Name,
		TotalQuantity:     e.TotalQuantity,
		AvailableQuantity: e.AvailableQuantity,
		CreatedAt:         e.CreatedAt,
	}
	if e.Category.Valid {
		r.Category = &e.Category.String
	}
	if e.ConditionNote.Valid {
		r.ConditionNote = &e.ConditionNote.String
	}
	if e.Description.Valid {
		r.Description = &e.Description.String
	}
	if e.UpdatedAt.Valid {
		r.UpdatedAt = &e.UpdatedAt.Time
	}
	return r
}
