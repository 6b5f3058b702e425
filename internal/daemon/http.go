package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/pipeline"

	"go.uber.org/zap"
)

// SummaryResponse is served at /v1/summary.
type SummaryResponse struct {
	View         string                  `json:"view"`
	Mode         model.BudgetMode        `json:"mode"`
	Currency     model.Currency          `json:"currency"`
	Result       model.CalculationResult `json:"result"`
	Status       string                  `json:"status"`
	Comparison   []model.Comparison      `json:"comparison"`
	Distribution []model.Slice           `json:"distribution"`
	Variances    []model.Variance        `json:"variances"`
}

// DailyResponse is served at /v1/daily.
type DailyResponse struct {
	Window int              `json:"window"`
	Days   []model.DayTotal `json:"days"`
}

// MonthlyResponse is served at /v1/monthly.
type MonthlyResponse struct {
	Months  []model.MonthTotal  `json:"months"`
	Targets []model.MonthTarget `json:"targets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/summary", s.handleSummary)
	mux.HandleFunc("/v1/daily", s.handleDaily)
	mux.HandleFunc("/v1/monthly", s.handleMonthly)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

func (s *Service) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Info("bad request", zap.String("path", r.URL.Path), zap.String("query", r.URL.RawQuery), zap.Error(err))
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r.URL.Query())
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	l := s.currentLedger()
	res := pipeline.Calculate(l, period)
	view := "all"
	if period != nil {
		view = period.Key()
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		View:         view,
		Mode:         l.Mode,
		Currency:     l.Currency,
		Result:       res,
		Status:       pipeline.SpendStatus(res),
		Comparison:   pipeline.Comparison(res),
		Distribution: pipeline.Distribution(res),
		Variances:    pipeline.Variances(res),
	})
}

func (s *Service) handleDaily(w http.ResponseWriter, r *http.Request) {
	window := s.cfg.Window
	if raw := r.URL.Query().Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 366 {
			s.badRequest(w, r, fmt.Errorf("window must be an integer between 1 and 366, got %q", raw))
			return
		}
		window = n
	}

	days := pipeline.AggregateByDayAt(s.currentLedger().Expenses, window, s.now())
	writeJSON(w, http.StatusOK, DailyResponse{Window: window, Days: days})
}

func (s *Service) handleMonthly(w http.ResponseWriter, _ *http.Request) {
	l := s.currentLedger()
	months := pipeline.AggregateByMonth(l.Expenses)
	writeJSON(w, http.StatusOK, MonthlyResponse{
		Months:  months,
		Targets: pipeline.MonthlyTargets(l, months),
	})
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

// periodFromQuery reads ?month=YYYY-MM or ?monthIndex=&year= (0-based
// month). No parameters selects the all-time view.
func periodFromQuery(q url.Values) (*model.Period, error) {
	if key := q.Get("month"); key != "" {
		if q.Has("monthIndex") || q.Has("year") {
			return nil, errors.New("use either month or monthIndex and year, not both")
		}
		p, err := model.ParsePeriod(key)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}

	index, err := optionalInt(q, "monthIndex")
	if err != nil {
		return nil, err
	}
	year, err := optionalInt(q, "year")
	if err != nil {
		return nil, err
	}
	return model.PeriodFromIndex(index, year)
}

func optionalInt(q url.Values, key string) (*int, error) {
	if !q.Has(key) {
		return nil, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", key, q.Get(key))
	}
	return &n, nil
}
