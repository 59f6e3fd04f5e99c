package equipment

import (
	"context"
	"database/sql"

	"ELMS-backend/internal/platform/apierr"
)

// ===== Service =====

// EquipmentStore は service が使う永続化面。SQL実装は Store。
type EquipmentStore interface {
	Insert(ctx context.Context, e *Equipment) error
	Get(ctx context.Context, id int64) (*Equipment, error)
	List(ctx context.Context) ([]Equipment, error)
	ExecUpdate(ctx context.Context, id int64, req UpdateEquipmentRequest) (*Equipment, error)
	ExecDelete(ctx context.Context, id int64) error
}

type Service struct {
	store EquipmentStore
}

func NewService(d *sql.DB) *Service { return &Service{store: NewStore(d)} }

func NewServiceWithStore(st EquipmentStore) *Service { return &Service{store: st} }

func (s *Service) Create(ctx context.Context, req CreateEquipmentRequest) (*EquipmentResponse, error) {
	if req.Name == "" {
		return nil, apierr.ErrInvalid("name is required")
	}
	if req.TotalQuantity < 0 {
		return nil, apierr.ErrInvalid("total_quantity must be >= 0")
	}

	// available 省略時は total と同じ。指定時も範囲内に丸める
	avail := req.TotalQuantity
	if req.AvailableQuantity != nil {
		avail = clampAvailable(*req.AvailableQuantity, req.TotalQuantity)
	}

	e := &Equipment{
		Name:              req.Name,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: avail,
	}
	if req.Category != nil && *req.Category != "" {
		e.Category = sql.NullString{String: *req.Category, Valid: true}
	}
	if req.ConditionNote != nil && *req.ConditionNote != "" {
		e.ConditionNote = sql.NullString{String: *req.ConditionNote, Valid: true}
	}
	if req.Description != nil && *req.Description != "" {
		e.Description = sql.NullString{String: *req.Description, Valid: true}
	}

	if err := s.store.Insert(ctx, e); err != nil {
		return nil, err
	}
	resp := buildResponse(e)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEquipmentRequest) (*EquipmentResponse, error) {
	if id <= 0 {
		return nil, apierr.ErrInvalid("equipment_id must be > 0")
	}
	if req.TotalQuantity != nil && *req.TotalQuantity < 0 {
		return nil, apierr.ErrInvalid("total_quantity must be >= 0")
	}
	if req.Name != nil && *req.Name == "" {
		return nil, apierr.ErrInvalid("name must not be empty")
	}

	e, err := s.store.ExecUpdate(ctx, id, req)
	if err != nil {
		return nil, err
	}
	resp := buildResponse(e)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apierr.ErrInvalid("equipment_id must be > 0")
	}
	return s.store.ExecDelete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*EquipmentResponse, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := buildResponse(e)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]EquipmentResponse, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EquipmentResponse, 0, len(items))
	for i := range items {
		out = append(out, buildResponse(&items[i]))
	}
	return out, nil
}
