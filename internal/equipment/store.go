package equipment

import (
	"context"
	"database/sql"
	"errors"

	"ELMS-backend/internal/platform/apierr"
	"ELMS-backend/internal/platform/db"
)

type Store struct {
	db *sql.DB
}

func NewStore(d *sql.DB) *Store { return &Store{db: d} }

const selectCols = `equipment_id, name, category, condition_note, description, total_quantity, available_quantity, created_at, updated_at`

func scanEquipment(row interface{ Scan(...any) error }, e *Equipment) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Category, &e.ConditionNote, &e.Description,
		&e.TotalQuantity, &e.AvailableQuantity, &e.CreatedAt, &e.UpdatedAt,
	)
}

func (s *Store) Insert(ctx context.Context, e *Equipment) error {
	const q = `
	INSERT INTO equipment
	(name, category, condition_note, description, total_quantity, available_quantity, created_at)
	VALUES (?, ?, ?, ?, ?, ?, NOW(6))`
	res, err := s.db.ExecContext(ctx, q,
		e.Name, e.Category, e.ConditionNote, e.Description,
		e.TotalQuantity, e.AvailableQuantity,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	e.ID = id
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Equipment, error) {
	q := `SELECT ` + selectCols + ` FROM equipment WHERE equipment_id = ?`
	var e Equipment
	if err := scanEquipment(s.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.ErrNotFound("equipment not found")
		}
		return nil, err
	}
	return &e, nil
}

func (s *Store) List(ctx context.Context) ([]Equipment, error) {
	q := `SELECT ` + selectCols + ` FROM equipment ORDER BY equipment_id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Equipment
	for rows.Next() {
		var e Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExecUpdate はメタデータと数量をトランザクション内で更新する。
// total_quantity の変更は行ロック下で available を再計算する
// （貸出処理と同じ行を取り合うため）。
func (s *Store) ExecUpdate(ctx context.Context, id int64, req UpdateEquipmentRequest) (*Equipment, error) {
	var out *Equipment
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		q := `SELECT ` + selectCols + ` FROM equipment WHERE equipment_id = ? FOR UPDATE`
		var e Equipment
		if err := scanEquipment(tx.QueryRowContext(ctx, q, id), &e); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apierr.ErrNotFound("equipment not found")
			}
			return err
		}

		if req.Name != nil {
			e.Name = *req.Name
		}
		if req.Category != nil {
			e.Category = sql.NullString{String: *req.Category, Valid: true}
		}
		if req.ConditionNote != nil {
			e.ConditionNote = sql.NullString{String: *req.ConditionNote, Valid: true}
		}
		if req.Description != nil {
			e.Description = sql.NullString{String: *req.Description, Valid: true}
		}
		if req.TotalQuantity != nil {
			newTotal := *req.TotalQuantity
			e.AvailableQuantity = recalcAvailable(e.TotalQuantity, newTotal, e.AvailableQuantity)
			e.TotalQuantity = newTotal
		}

		const uq = `
		UPDATE equipment
		SET name = ?, category = ?, condition_note = ?, description = ?,
		    total_quantity = ?, available_quantity = ?, updated_at = NOW(6)
		WHERE equipment_id = ?`
		if _, err := tx.ExecContext(ctx, uq,
			e.Name, e.Category, e.ConditionNote, e.Description,
			e.TotalQuantity, e.AvailableQuantity, e.ID,
		); err != nil {
			return err
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecDelete は貸出リクエストから参照されていない場合のみ削除する。
// 参照チェックと削除は同一Txで行い、孤児リクエストを作らない。
func (s *Store) ExecDelete(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var n int64
		const cq = `SELECT COUNT(*) FROM borrow_requests WHERE equipment_id = ?`
		if err := tx.QueryRowContext(ctx, cq, id).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return apierr.ErrConflict("equipment is linked to existing borrow records")
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM equipment WHERE equipment_id = ?`, id)
		if err != nil {
			return err
		}
		aff, _ := res.RowsAffected()
		if aff == 0 {
			return apierr.ErrNotFound("equipment not found")
		}
		return nil
	})
}
