package overdue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ELMS-backend/internal/overdue"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// issuedReq はスイープ対象判定をインメモリで再現するための1行。
type issuedReq struct {
	id      int64
	name    string
	endDate time.Time
	status  string
	flagged bool
}

type fakeSweepStore struct {
	reqs map[int64]*issuedReq
	// 書かれた通知メッセージ（request_id順は呼び出し順）
	notifications []string
	// 候補列挙の直後にこのIDへフラグを立てる（並行実行との競合を再現）
	raceFlagID int64
}

func (f *fakeSweepStore) ListCandidates(ctx context.Context, today time.Time) ([]overdue.Candidate, error) {
	var out []overdue.Candidate
	for _, r := range f.reqs {
		if r.status == "ISSUED" && !r.flagged && r.endDate.Before(today) {
			out = append(out, overdue.Candidate{
				RequestID:     r.id,
				RequestULID:   fmt.Sprintf("01REQ%020d", r.id),
				EquipmentName: r.name,
				EndDate:       r.endDate,
			})
		}
	}
	if r, ok := f.reqs[f.raceFlagID]; ok {
		r.flagged = true
	}
	return out, nil
}

func (f *fakeSweepStore) FlagAndNotify(ctx context.Context, c overdue.Candidate, message string, now time.Time) (bool, error) {
	r := f.reqs[c.RequestID]
	if r == nil || r.flagged || r.status != "ISSUED" {
		return false, nil
	}
	r.flagged = true
	f.notifications = append(f.notifications, message)
	return true, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRunOnce_FlagsOnlyPastDueIssued(t *testing.T) {
	st := &fakeSweepStore{reqs: map[int64]*issuedReq{
		1: {id: 1, name: "Projector", endDate: date("2025-04-07"), status: "ISSUED"},
		2: {id: 2, name: "Camera", endDate: date("2025-04-10"), status: "ISSUED"},   // 本日が期限。まだ延滞ではない
		3: {id: 3, name: "Tripod", endDate: date("2025-04-01"), status: "RETURNED"}, // 返却済み
		4: {id: 4, name: "Mixer", endDate: date("2025-04-05"), status: "ISSUED", flagged: true},
	}}
	sw := overdue.NewSweeperWith(st, fixedClock{t: date("2025-04-10").Add(15 * time.Hour)})

	n, err := sw.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, st.notifications, 1)
	assert.Equal(t, "Equipment 'Projector' is overdue since 2025-04-07", st.notifications[0])
	assert.True(t, st.reqs[1].flagged)
	assert.False(t, st.reqs[2].flagged)
}

func TestRunOnce_Idempotent(t *testing.T) {
	st := &fakeSweepStore{reqs: map[int64]*issuedReq{
		1: {id: 1, name: "Projector", endDate: date("2025-04-07"), status: "ISSUED"},
	}}
	sw := overdue.NewSweeperWith(st, fixedClock{t: date("2025-04-10")})
	ctx := context.Background()

	n, err := sw.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// 2回目は新たにフラグを立てず、通知も増えない
	n, err = sw.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, st.notifications, 1)
}

type blockingStore struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) ListCandidates(ctx context.Context, today time.Time) ([]overdue.Candidate, error) {
	close(b.entered)
	<-b.release
	return nil, nil
}

func (b *blockingStore) FlagAndNotify(ctx context.Context, c overdue.Candidate, message string, now time.Time) (bool, error) {
	return false, nil
}

func TestRunOnce_SkipsWhileAnotherRunIsActive(t *testing.T) {
	st := &blockingStore{entered: make(chan struct{}), release: make(chan struct{})}
	sw := overdue.NewSweeperWith(st, fixedClock{t: date("2025-04-10")})

	done := make(chan error, 1)
	go func() {
		_, err := sw.RunOnce(context.Background())
		done <- err
	}()
	<-st.entered

	// 先行の実行中は後発が即座に弾かれる
	_, err := sw.RunOnce(context.Background())
	assert.ErrorIs(t, err, overdue.ErrSweepRunning)

	close(st.release)
	require.NoError(t, <-done)
}

func TestRunOnce_LosingRaceWritesNoNotification(t *testing.T) {
	// 候補列挙の後・フラグ更新の前に別の実行が先にフラグを立てたケース。
	// FlagAndNotify が false を返すので件数にも通知にも入らない。
	st := &fakeSweepStore{
		reqs: map[int64]*issuedReq{
			1: {id: 1, name: "Projector", endDate: date("2025-04-07"), status: "ISSUED"},
		},
		raceFlagID: 1,
	}
	sw := overdue.NewSweeperWith(st, fixedClock{t: date("2025-04-10")})

	n, err := sw.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, st.notifications)
}
