package overdue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "overdue_sweep_runs_total",
		Help: "Completed overdue sweep runs.",
	})
	flaggedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "overdue_requests_flagged_total",
		Help: "Borrow requests flagged as overdue.",
	})
)

// 手動実行とスケジュール実行が同時に走ったときに後発へ返す
var ErrSweepRunning = errors.New("overdue sweep is already running")

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Sweeper は発行済み・期限超過のリクエストへ延滞フラグを立てて
// 通知を書く定期タスク。1件ごとに独立したTxで処理するので、途中で
// 失敗しても処理済みの分はそのまま有効。
type Sweeper struct {
	store SweepStore
	clock Clock

	mu sync.Mutex // 実行の重複防止
}

func NewSweeper(d *sql.DB) *Sweeper {
	return &Sweeper{store: NewStore(d), clock: realClock{}}
}

func NewSweeperWith(store SweepStore, clock Clock) *Sweeper {
	return &Sweeper{store: store, clock: clock}
}

// RunOnce は1回分のスイープ。フラグを立てた件数を返す。
// すでに別の実行が走っていれば ErrSweepRunning。
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	if !s.mu.TryLock() {
		return 0, ErrSweepRunning
	}
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	candidates, err := s.store.ListCandidates(ctx, today)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, c := range candidates {
		msg := fmt.Sprintf("Equipment '%s' is overdue since %s", c.EquipmentName, c.EndDate.Format("2006-01-02"))
		ok, err := s.store.FlagAndNotify(ctx, c, msg, now)
		if err != nil {
			return flagged, err
		}
		if ok {
			flagged++
			flaggedTotal.Inc()
		}
	}

	sweepRunsTotal.Inc()
	if flagged > 0 {
		log.Printf("[INFO] overdue sweep flagged %d request(s)", flagged)
	}
	return flagged, nil
}

// Start は ctx がキャンセルされるまで interval ごとに RunOnce を回す。
// main から goroutine で呼ぶ想定。
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[INFO] overdue sweeper started (interval %s)", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] overdue sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrSweepRunning) {
				log.Printf("[WARN] overdue sweep failed: %v", err)
			}
		}
	}
}
