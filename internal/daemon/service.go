// Package daemon provides the long-running budget service: it polls the
// ledger, publishes an event whenever the figures move, and serves the
// derived views over HTTP and SSE.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Event types.
const (
	EventSnapshot = "snapshot"
	EventDelta    = "budget_delta"
)

// Config controls the daemon runtime behavior.
type Config struct {
	LedgerPath   string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Window       int
}

// LedgerSource is the read side of a ledger store.
type LedgerSource interface {
	Load(ctx context.Context) (model.Ledger, error)
}

// Snapshot is the current month's budget state for status/event payloads.
type Snapshot struct {
	At              time.Time        `json:"at"`
	Month           string           `json:"month"`
	Mode            model.BudgetMode `json:"mode"`
	Currency        model.Currency   `json:"currency"`
	Expenses        int              `json:"expenses"`
	Income          float64          `json:"income"`
	Spent           float64          `json:"spent"`
	Savings         float64          `json:"savings"`
	Remaining       float64          `json:"remaining"`
	ActualSavings   float64          `json:"actual_savings"`
	SavingsRate     float64          `json:"savings_rate"`
	EfficiencyScore int              `json:"efficiency_score"`
	Status          string           `json:"status"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Expenses        int     `json:"expenses"`
	Income          float64 `json:"income"`
	Spent           float64 `json:"spent"`
	Savings         float64 `json:"savings"`
	EfficiencyScore int     `json:"efficiency_score"`
}

func (d Delta) isZero() bool {
	return d.Expenses == 0 &&
		d.Income == 0 &&
		d.Spent == 0 &&
		d.Savings == 0 &&
		d.EfficiencyScore == 0
}

// Event is emitted whenever the budget snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	LedgerPath      string    `json:"ledger_path"`
	WindowDays      int       `json:"window_days"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	src    LedgerSource
	logger *zap.Logger
	now    func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	ledger      model.Ledger
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service reading from src.
func New(cfg Config, src LedgerSource, logger *zap.Logger) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Window < 1 {
		cfg.Window = pipeline.DefaultWindowDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		logger:    logger,
		now:       time.Now,
		startedAt: time.Now(),
		ledger:    model.DefaultLedger(),
		subs:      make(map[int]chan Event),
	}
}

// Run serves HTTP and polls the ledger until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		// Open SSE streams end with the service.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		// Seed initial snapshot so status is useful immediately.
		s.pollOnce(gctx)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				s.pollOnce(gctx)
			}
		}
	})

	return g.Wait()
}

func (s *Service) pollOnce(ctx context.Context) {
	start := s.now()
	l, err := s.src.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = start
		s.pollCount++
		s.mu.Unlock()
		s.logger.Warn("ledger poll failed", zap.Error(err))
		return
	}

	snap := snapshotFromLedger(l, start)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.ledger = l
	s.lastPollAt = start
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: start, Snapshot: snap}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() || settingsChanged(prev, snap) {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventDelta, Timestamp: start, Snapshot: snap, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
		s.logger.Debug("budget event published",
			zap.Int64("id", ev.ID),
			zap.String("type", ev.Type),
			zap.Int("expenses", snap.Expenses),
		)
	}
	s.logger.Debug("ledger polled", zap.Duration("took", s.now().Sub(start)))
}

func snapshotFromLedger(l model.Ledger, at time.Time) Snapshot {
	p := model.CurrentPeriod(at)
	res := pipeline.Calculate(l, &p)
	return Snapshot{
		At:              at,
		Month:           p.Key(),
		Mode:            l.Mode,
		Currency:        l.Currency,
		Expenses:        len(l.Expenses),
		Income:          res.Income,
		Spent:           res.ExpensesTotal,
		Savings:         res.Breakdown.Savings,
		Remaining:       res.Remaining,
		ActualSavings:   res.TotalActualSavings,
		SavingsRate:     res.SavingsRate,
		EfficiencyScore: res.EfficiencyScore,
		Status:          pipeline.SpendStatus(res),
	}
}

func settingsChanged(prev, curr Snapshot) bool {
	return prev.Month != curr.Month || prev.Mode != curr.Mode || prev.Currency != curr.Currency
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Expenses:        curr.Expenses - prev.Expenses,
		Income:          curr.Income - prev.Income,
		Spent:           curr.Spent - prev.Spent,
		Savings:         curr.Savings - prev.Savings,
		EfficiencyScore: curr.EfficiencyScore - prev.EfficiencyScore,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		LedgerPath:      s.cfg.LedgerPath,
		WindowDays:      s.cfg.Window,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

// currentLedger returns the ledger from the last successful poll.
func (s *Service) currentLedger() model.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
