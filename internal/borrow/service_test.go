package borrow_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ELMS-backend/internal/borrow"
	"ELMS-backend/internal/platform/apierr"
)

// ===== in-memory fake store =====
// WithinTx はクローンに対して fn を実行し、成功時だけ差し替える。
// 失敗した遷移が状態を残さないこと（ロールバック）までテストできる。

type memState struct {
	equipment map[int64]*borrow.EquipmentCounts
	requests  map[string]*borrow.BorrowRequest
	nextID    int64
}

func (s *memState) clone() *memState {
	c := &memState{
		equipment: make(map[int64]*borrow.EquipmentCounts, len(s.equipment)),
		requests:  make(map[string]*borrow.BorrowRequest, len(s.requests)),
		nextID:    s.nextID,
	}
	for k, v := range s.equipment {
		cp := *v
		c.equipment[k] = &cp
	}
	for k, v := range s.requests {
		cp := *v
		c.requests[k] = &cp
	}
	return c
}

type fakeStore struct {
	mu sync.Mutex
	st memState
}

func newFakeStore() *fakeStore {
	return &fakeStore{st: memState{
		equipment: map[int64]*borrow.EquipmentCounts{},
		requests:  map[string]*borrow.BorrowRequest{},
		nextID:    1,
	}}
}

func (f *fakeStore) addEquipment(id int64, name string, total, available int) {
	f.st.equipment[id] = &borrow.EquipmentCounts{
		ID: id, Name: name, TotalQuantity: total, AvailableQuantity: available,
	}
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx borrow.TxStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	work := f.st.clone()
	if err := fn(ctx, &fakeTx{st: work}); err != nil {
		return err
	}
	f.st = *work
	return nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID int64) ([]borrow.RequestRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []borrow.RequestRow
	for _, r := range f.st.requests {
		if r.UserID == userID {
			out = append(out, f.row(r))
		}
	}
	return out, nil
}

func (f *fakeStore) ListByStatus(ctx context.Context, st borrow.Status) ([]borrow.RequestRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []borrow.RequestRow
	for _, r := range f.st.requests {
		if r.Status == st {
			out = append(out, f.row(r))
		}
	}
	return out, nil
}

func (f *fakeStore) row(r *borrow.BorrowRequest) borrow.RequestRow {
	name := ""
	if eq, ok := f.st.equipment[r.EquipmentID]; ok {
		name = eq.Name
	}
	return borrow.RequestRow{BorrowRequest: *r, EquipmentName: name}
}

func (f *fakeStore) request(ulid string) borrow.BorrowRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.st.requests[ulid]
}

func (f *fakeStore) available(equipmentID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.equipment[equipmentID].AvailableQuantity
}

type fakeTx struct{ st *memState }

func (t *fakeTx) GetRequestForUpdate(ctx context.Context, ulid string) (*borrow.BorrowRequest, error) {
	r, ok := t.st.requests[ulid]
	if !ok {
		return nil, apierr.ErrNotFound("borrow request not found")
	}
	return r, nil
}

func (t *fakeTx) getEquipment(id int64) (*borrow.EquipmentCounts, error) {
	eq, ok := t.st.equipment[id]
	if !ok {
		return nil, apierr.ErrNotFound("equipment not found")
	}
	return eq, nil
}

func (t *fakeTx) GetEquipment(ctx context.Context, id int64) (*borrow.EquipmentCounts, error) {
	return t.getEquipment(id)
}

func (t *fakeTx) GetEquipmentForUpdate(ctx context.Context, id int64) (*borrow.EquipmentCounts, error) {
	return t.getEquipment(id)
}

func (t *fakeTx) SumOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) (int, error) {
	sum := 0
	for _, r := range t.st.requests {
		if r.EquipmentID != equipmentID {
			continue
		}
		if r.Status != borrow.StatusApproved && r.Status != borrow.StatusIssued {
			continue
		}
		if borrow.Overlaps(r.StartDate, r.EndDate, start, end) {
			sum += r.QuantityRequested
		}
	}
	return sum, nil
}

func (t *fakeTx) InsertRequest(ctx context.Context, r *borrow.BorrowRequest) error {
	r.ID = t.st.nextID
	t.st.nextID++
	cp := *r
	t.st.requests[r.RequestULID] = &cp
	return nil
}

func (t *fakeTx) UpdateRequest(ctx context.Context, r *borrow.BorrowRequest) error {
	if _, ok := t.st.requests[r.RequestULID]; !ok {
		return apierr.ErrInternal("failed to update borrow_requests row")
	}
	cp := *r
	t.st.requests[r.RequestULID] = &cp
	return nil
}

func (t *fakeTx) AdjustAvailable(ctx context.Context, equipmentID int64, delta int) error {
	eq, ok := t.st.equipment[equipmentID]
	if !ok {
		return apierr.ErrInternal("failed to update equipment.available_quantity")
	}
	eq.AvailableQuantity += delta
	return nil
}

// ===== helpers =====

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) New() (string, error) {
	g.n++
	return fmt.Sprintf("01REQ%020d", g.n), nil
}

func newService(f *fakeStore) *borrow.Service {
	return borrow.NewServiceWith(f, fixedClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}, &seqIDGen{})
}

func create(t *testing.T, svc *borrow.Service, userID, equipmentID int64, qty int, start, end string) *borrow.BorrowResponse {
	t.Helper()
	res, err := svc.Create(context.Background(), userID, borrow.CreateBorrowRequest{
		EquipmentID: equipmentID, Quantity: qty, StartDate: start, EndDate: end,
	})
	require.NoError(t, err)
	return res
}

// ===== tests =====

func TestCreate_Validation(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Oscilloscope", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	cases := []struct {
		name string
		req  borrow.CreateBorrowRequest
		code apierr.Code
	}{
		{"zero quantity", borrow.CreateBorrowRequest{EquipmentID: 1, Quantity: 0, StartDate: "2024-03-01", EndDate: "2024-03-05"}, apierr.CodeInvalidArgument},
		{"negative quantity", borrow.CreateBorrowRequest{EquipmentID: 1, Quantity: -2, StartDate: "2024-03-01", EndDate: "2024-03-05"}, apierr.CodeInvalidArgument},
		{"bad start date", borrow.CreateBorrowRequest{EquipmentID: 1, Quantity: 1, StartDate: "03/01/2024", EndDate: "2024-03-05"}, apierr.CodeInvalidArgument},
		{"start after end", borrow.CreateBorrowRequest{EquipmentID: 1, Quantity: 1, StartDate: "2024-03-06", EndDate: "2024-03-05"}, apierr.CodeInvalidArgument},
		{"unknown equipment", borrow.CreateBorrowRequest{EquipmentID: 99, Quantity: 1, StartDate: "2024-03-01", EndDate: "2024-03-05"}, apierr.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 10, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, apierr.CodeOf(err))
		})
	}
}

func TestCreate_ProducesPending(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Oscilloscope", 5, 5)
	svc := newService(f)

	res := create(t, svc, 10, 1, 2, "2024-03-01", "2024-03-05")
	assert.Equal(t, borrow.StatusPending, res.Status)
	assert.Equal(t, "Oscilloscope", res.EquipmentName)
	// 作成は台帳に触れない
	assert.Equal(t, 5, f.available(1))
}

func TestApprove_TransitionGuards(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Oscilloscope", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	res := create(t, svc, 10, 1, 2, "2024-03-01", "2024-03-05")
	_, err := svc.Approve(ctx, res.RequestULID, 1, nil)
	require.NoError(t, err)

	// 二重承認は NOT_PENDING
	_, err = svc.Approve(ctx, res.RequestULID, 1, nil)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeNotPending, apierr.CodeOf(err))
	// 失敗してもステータスは変わらない
	assert.Equal(t, borrow.StatusApproved, f.request(res.RequestULID).Status)

	_, err = svc.Approve(ctx, "01UNKNOWN", 1, nil)
	assert.Equal(t, apierr.CodeNotFound, apierr.CodeOf(err))
}

func TestApprove_CapacityAcrossOverlappingWindows(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Projector", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	a := create(t, svc, 10, 1, 3, "2024-03-01", "2024-03-10")
	_, err := svc.Approve(ctx, a.RequestULID, 1, nil)
	require.NoError(t, err)

	// 3 + 3 > 5: 期間が重なるので承認できない
	b := create(t, svc, 11, 1, 3, "2024-03-05", "2024-03-15")
	_, err = svc.Approve(ctx, b.RequestULID, 1, nil)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeCapacityExceeded, apierr.CodeOf(err))
	assert.Equal(t, borrow.StatusPending, f.request(b.RequestULID).Status)

	// 端点が接するだけでも重なり扱い
	c := create(t, svc, 12, 1, 3, "2024-03-10", "2024-03-20")
	_, err = svc.Approve(ctx, c.RequestULID, 1, nil)
	assert.Equal(t, apierr.CodeCapacityExceeded, apierr.CodeOf(err))

	// 重ならない期間なら承認できる
	d := create(t, svc, 13, 1, 3, "2024-03-11", "2024-03-20")
	_, err = svc.Approve(ctx, d.RequestULID, 1, nil)
	assert.NoError(t, err)

	// 2なら同時期でも総数に収まる
	e := create(t, svc, 14, 1, 2, "2024-03-01", "2024-03-10")
	_, err = svc.Approve(ctx, e.RequestULID, 1, nil)
	assert.NoError(t, err)
}

func TestIssue_ChecksLiveStock(t *testing.T) {
	f := newFakeStore()
	// 総数5のうち現物は1しか残っていない状況
	f.addEquipment(1, "Camera", 5, 1)
	svc := newService(f)
	ctx := context.Background()

	r := create(t, svc, 10, 1, 2, "2024-03-01", "2024-03-05")

	// PENDINGのままの発行は NOT_APPROVED
	_, err := svc.Issue(ctx, r.RequestULID, 2)
	assert.Equal(t, apierr.CodeNotApproved, apierr.CodeOf(err))

	_, err = svc.Approve(ctx, r.RequestULID, 1, nil)
	require.NoError(t, err)

	// 承認は通るが現物が足りないので発行は止まる
	_, err = svc.Issue(ctx, r.RequestULID, 2)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeInsufficientStock, apierr.CodeOf(err))
	assert.Equal(t, borrow.StatusApproved, f.request(r.RequestULID).Status)
	assert.Equal(t, 1, f.available(1))
}

func TestIssueAndReturn_LedgerMovements(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Camera", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	r := create(t, svc, 10, 1, 3, "2024-03-01", "2024-03-05")
	_, err := svc.Approve(ctx, r.RequestULID, 1, nil)
	require.NoError(t, err)

	res, err := svc.Issue(ctx, r.RequestULID, 7)
	require.NoError(t, err)
	assert.Equal(t, borrow.StatusIssued, res.Status)
	require.NotNil(t, res.AdminComment)
	assert.Equal(t, "Issued by user ID: 7", *res.AdminComment)
	assert.Equal(t, 2, f.available(1))

	// 返却で在庫が戻る
	res, err = svc.Return(ctx, r.RequestULID)
	require.NoError(t, err)
	assert.Equal(t, borrow.StatusReturned, res.Status)
	assert.Equal(t, 5, f.available(1))

	// RETURNED からの遷移は全て拒否
	_, err = svc.Return(ctx, r.RequestULID)
	assert.Equal(t, apierr.CodeNotIssued, apierr.CodeOf(err))
	_, err = svc.Issue(ctx, r.RequestULID, 7)
	assert.Equal(t, apierr.CodeNotApproved, apierr.CodeOf(err))
	_, err = svc.Reject(ctx, r.RequestULID, nil)
	assert.Equal(t, apierr.CodeNotRejectable, apierr.CodeOf(err))
}

func TestReturn_InconsistentLedgerAborts(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Camera", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	r := create(t, svc, 10, 1, 3, "2024-03-01", "2024-03-05")
	_, err := svc.Approve(ctx, r.RequestULID, 1, nil)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, r.RequestULID, 1)
	require.NoError(t, err)

	// 外から available を壊す（発行中なのに満杯）
	f.st.equipment[1].AvailableQuantity = 5

	_, err = svc.Return(ctx, r.RequestULID)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeInternal, apierr.CodeOf(err))
	// 黙って直さない: ステータスもカウンタもそのまま
	assert.Equal(t, borrow.StatusIssued, f.request(r.RequestULID).Status)
	assert.Equal(t, 5, f.available(1))
}

func TestReject(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Camera", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	// PENDING からの却下、コメント省略ならデフォルト文言
	r1 := create(t, svc, 10, 1, 1, "2024-03-01", "2024-03-05")
	res, err := svc.Reject(ctx, r1.RequestULID, nil)
	require.NoError(t, err)
	assert.Equal(t, borrow.StatusRejected, res.Status)
	require.NotNil(t, res.AdminComment)
	assert.Equal(t, "Rejected by admin", *res.AdminComment)

	// APPROVED からの却下も可。台帳には触れない
	r2 := create(t, svc, 10, 1, 1, "2024-03-01", "2024-03-05")
	_, err = svc.Approve(ctx, r2.RequestULID, 1, nil)
	require.NoError(t, err)
	comment := "condition mismatch"
	res, err = svc.Reject(ctx, r2.RequestULID, &comment)
	require.NoError(t, err)
	assert.Equal(t, "condition mismatch", *res.AdminComment)
	assert.Equal(t, 5, f.available(1))

	// REJECTED は終端
	_, err = svc.Reject(ctx, r1.RequestULID, nil)
	assert.Equal(t, apierr.CodeNotRejectable, apierr.CodeOf(err))
}

// 仕様どおりの一連のシナリオ:
// 総数5。Aがqty=3で承認・発行 -> available=2。Bがqty=3・期間重複だと
// 承認段階で CAPACITY_EXCEEDED。Aの返却後は承認も発行も通る。
func TestEndToEndScenario(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Spectrometer", 5, 5)
	svc := newService(f)
	ctx := context.Background()

	a := create(t, svc, 10, 1, 3, "2024-04-01", "2024-04-05")
	_, err := svc.Approve(ctx, a.RequestULID, 1, nil)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, a.RequestULID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, f.available(1))

	b := create(t, svc, 11, 1, 3, "2024-04-03", "2024-04-08")
	_, err = svc.Approve(ctx, b.RequestULID, 1, nil)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeCapacityExceeded, apierr.CodeOf(err))

	_, err = svc.Return(ctx, a.RequestULID)
	require.NoError(t, err)
	assert.Equal(t, 5, f.available(1))

	// AはRETURNEDになったので重複合計から消え、Bが承認できる
	_, err = svc.Approve(ctx, b.RequestULID, 1, nil)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, b.RequestULID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, f.available(1))
}

// 在庫保存則: available = total - 発行中リクエストの数量合計
func TestStockConservation(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Tripod", 10, 10)
	svc := newService(f)
	ctx := context.Background()

	var issued []string
	for i := 0; i < 4; i++ {
		r := create(t, svc, int64(20+i), 1, 2, "2024-05-01", "2024-05-03")
		_, err := svc.Approve(ctx, r.RequestULID, 1, nil)
		require.NoError(t, err)
		_, err = svc.Issue(ctx, r.RequestULID, 1)
		require.NoError(t, err)
		issued = append(issued, r.RequestULID)
	}
	assert.Equal(t, 10-4*2, f.available(1))

	_, err := svc.Return(ctx, issued[0])
	require.NoError(t, err)
	_, err = svc.Return(ctx, issued[1])
	require.NoError(t, err)

	rows, err := svc.ListIssued(ctx)
	require.NoError(t, err)
	sum := 0
	for _, r := range rows {
		sum += r.Quantity
	}
	assert.Equal(t, 10-sum, f.available(1))
}

func TestListMine(t *testing.T) {
	f := newFakeStore()
	f.addEquipment(1, "Tripod", 10, 10)
	svc := newService(f)

	create(t, svc, 10, 1, 1, "2024-05-01", "2024-05-03")
	create(t, svc, 10, 1, 1, "2024-05-04", "2024-05-06")
	create(t, svc, 11, 1, 1, "2024-05-01", "2024-05-03")

	mine, err := svc.ListMine(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
