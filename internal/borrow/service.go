package borrow

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"ELMS-backend/internal/platform/apierr"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== Service本体 =====

// Service は貸出リクエストの状態遷移を所有する。
// 各遷移は1トランザクションで完結し、リクエスト行 -> 機材行の順に
// ロックを取る（承認の容量チェックと発行の在庫チェックを同一機材に
// ついて直列化するため）。
type Service struct {
	store Store
	clock Clock
	id    IDGen
}

func NewService(d *sql.DB) *Service {
	return &Service{
		store: NewStore(d),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// テスト用にストアとクロックを差し替えられるコンストラクタ
func NewServiceWith(store Store, clock Clock, id IDGen) *Service {
	return &Service{store: store, clock: clock, id: id}
}

// 貸出リクエスト作成（PENDING）。台帳には触れない。
func (s *Service) Create(ctx context.Context, userID int64, req CreateBorrowRequest) (*BorrowResponse, error) {
	if req.Quantity <= 0 {
		return nil, apierr.ErrInvalid("quantity must be > 0")
	}
	if req.EquipmentID <= 0 {
		return nil, apierr.ErrInvalid("equipment_id must be > 0")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apierr.ErrInvalid("invalid start_date format, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, apierr.ErrInvalid("invalid end_date format, expected YYYY-MM-DD")
	}
	if start.After(end) {
		return nil, apierr.ErrInvalid("start_date must be on or before end_date")
	}

	idStr, err := s.id.New()
	if err != nil {
		return nil, err
	}

	r := &BorrowRequest{
		RequestULID:       idStr,
		UserID:            userID,
		EquipmentID:       req.EquipmentID,
		QuantityRequested: req.Quantity,
		StartDate:         start,
		EndDate:           end,
		Status:            StatusPending,
		CreatedAt:         s.clock.Now(),
	}

	var equipmentName string
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx TxStore) error {
		eq, err := tx.GetEquipment(ctx, req.EquipmentID)
		if err != nil {
			return err
		}
		equipmentName = eq.Name
		return tx.InsertRequest(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	resp := buildResponse(r, equipmentName)
	return &resp, nil
}

// 承認。容量チェックは「総数 - 期間が重なる承認済み・発行済みの合計」
// に対して行う。現物在庫（available）はここでは見ない。
func (s *Service) Approve(ctx context.Context, requestULID string, approverID int64, comment *string) (*BorrowResponse, error) {
	var out BorrowResponse
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx TxStore) error {
		r, err := tx.GetRequestForUpdate(ctx, requestULID)
		if err != nil {
			return err
		}
		if r.Status != StatusPending {
			return apierr.New(apierr.CodeNotPending, "only pending requests can be approved")
		}

		eq, err := tx.GetEquipmentForUpdate(ctx, r.EquipmentID)
		if err != nil {
			return err
		}
		already, err := tx.SumOverlapping(ctx, eq.ID, r.StartDate, r.EndDate)
		if err != nil {
			return err
		}
		if already+r.QuantityRequested > eq.TotalQuantity {
			return apierr.New(apierr.CodeCapacityExceeded, "not enough items available for the requested date range")
		}

		r.Status = StatusApproved
		if comment != nil && *comment != "" {
			r.AdminComment = sql.NullString{String: *comment, Valid: true}
		}
		r.UpdatedAt = sql.NullTime{Time: s.clock.Now(), Valid: true}
		if err := tx.UpdateRequest(ctx, r); err != nil {
			return err
		}
		out = buildResponse(r, eq.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// 発行。承認時と違い、現物在庫に対する二段目の（より厳しい）チェック。
// 承認から発行までの間に他の発行が在庫を使っている可能性があるため。
func (s *Service) Issue(ctx context.Context, requestULID string, issuerID int64) (*BorrowResponse, error) {
	var out BorrowResponse
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx TxStore) error {
		r, err := tx.GetRequestForUpdate(ctx, requestULID)
		if err != nil {
			return err
		}
		if r.Status != StatusApproved {
			return apierr.New(apierr.CodeNotApproved, "only approved requests can be issued")
		}

		eq, err := tx.GetEquipmentForUpdate(ctx, r.EquipmentID)
		if err != nil {
			return err
		}
		if eq.AvailableQuantity < r.QuantityRequested {
			return apierr.New(apierr.CodeInsufficientStock, "not enough available items to issue now")
		}
		if err := tx.AdjustAvailable(ctx, eq.ID, -r.QuantityRequested); err != nil {
			return err
		}

		r.Status = StatusIssued
		r.AdminComment = sql.NullString{String: fmt.Sprintf("Issued by user ID: %d", issuerID), Valid: true}
		r.UpdatedAt = sql.NullTime{Time: s.clock.Now(), Valid: true}
		if err := tx.UpdateRequest(ctx, r); err != nil {
			return err
		}
		out = buildResponse(r, eq.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// 返却。在庫を戻す。戻した結果が総数を超えるならカウンタが壊れている
// ので、黙って直さずTxを中断してログに残す。
func (s *Service) Return(ctx context.Context, requestULID string) (*BorrowResponse, error) {
	var out BorrowResponse
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx TxStore) error {
		r, err := tx.GetRequestForUpdate(ctx, requestULID)
		if err != nil {
			return err
		}
		if r.Status != StatusIssued {
			return apierr.New(apierr.CodeNotIssued, "only issued requests can be returned")
		}

		eq, err := tx.GetEquipmentForUpdate(ctx, r.EquipmentID)
		if err != nil {
			return err
		}
		if eq.AvailableQuantity+r.QuantityRequested > eq.TotalQuantity {
			log.Printf("[WARN] ledger inconsistency on equipment %d: available %d + returning %d exceeds total %d",
				eq.ID, eq.AvailableQuantity, r.QuantityRequested, eq.TotalQuantity)
			return apierr.ErrInternal("equipment ledger is inconsistent")
		}
		if err := tx.AdjustAvailable(ctx, eq.ID, r.QuantityRequested); err != nil {
			return err
		}

		r.Status = StatusReturned
		r.UpdatedAt = sql.NullTime{Time: s.clock.Now(), Valid: true}
		if err := tx.UpdateRequest(ctx, r); err != nil {
			return err
		}
		out = buildResponse(r, eq.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// 却下。発行前のリクエストのみ。台帳には触れない。
func (s *Service) Reject(ctx context.Context, requestULID string, comment *string) (*BorrowResponse, error) {
	var out BorrowResponse
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx TxStore) error {
		r, err := tx.GetRequestForUpdate(ctx, requestULID)
		if err != nil {
			return err
		}
		if !r.Status.Rejectable() {
			return apierr.New(apierr.CodeNotRejectable, "only pending or approved requests can be rejected")
		}

		r.Status = StatusRejected
		msg := "Rejected by admin"
		if comment != nil && *comment != "" {
			msg = *comment
		}
		r.AdminComment = sql.NullString{String: msg, Valid: true}
		r.UpdatedAt = sql.NullTime{Time: s.clock.Now(), Valid: true}
		if err := tx.UpdateRequest(ctx, r); err != nil {
			return err
		}
		out = buildResponse(r, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ===== 一覧系 =====

func (s *Service) ListMine(ctx context.Context, userID int64) ([]BorrowResponse, error) {
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildResponses(rows), nil
}

func (s *Service) ListPending(ctx context.Context) ([]BorrowResponse, error) {
	rows, err := s.store.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return buildResponses(rows), nil
}

// 発行済みで未返却のリクエスト一覧（= status ISSUED）
func (s *Service) ListIssued(ctx context.Context) ([]BorrowResponse, error) {
	rows, err := s.store.ListByStatus(ctx, StatusIssued)
	if err != nil {
		return nil, err
	}
	return buildResponses(rows), nil
}

func buildResponses(rows []RequestRow) []BorrowResponse {
	out := make([]BorrowResponse, 0, len(rows))
	for i := range rows {
		out = append(out, buildResponse(&rows[i].BorrowRequest, rows[i].EquipmentName))
	}
	return out
}
