// Package web serves the budget over a JSON API with a server-sent change
// feed.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/session"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	Locale       string
}

// Event is emitted after every successful write.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Table     string    `json:"table,omitempty"`
	Action    string    `json:"action,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Status is served at /healthz?verbose=1.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	SnapshotAt      time.Time `json:"snapshot_at"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service is the HTTP front end of one session controller.
type Service struct {
	cfg  Config
	ctrl *session.Controller
	tr   *locale.Translator
	log  zerolog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service over ctrl and subscribes to its changes.
func New(ctrl *session.Controller, cfg Config, log zerolog.Logger) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8765"
	}

	s := &Service{
		cfg:       cfg,
		ctrl:      ctrl,
		tr:        locale.New(cfg.Locale),
		log:       log,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
	ctrl.OnChange(s.onChange)
	return s
}

// Handler returns the routed API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(s.log))
	r.Use(Recovery(s.log))
	r.Use(CORS)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleAddTransaction)
		r.Put("/transactions", s.handleReplaceTransactions)
		r.Get("/entries", s.handleEntries)

		r.Get("/fixed-expenses", s.handleListFixed)
		r.Post("/fixed-expenses", s.handleAddFixed)
		r.Put("/fixed-expenses", s.handleReplaceFixed)

		r.Get("/goals", s.handleListGoals)
		r.Post("/goals", s.handleAddGoal)
		r.Put("/goals", s.handleReplaceGoals)
		r.Post("/goals/{name}/contributions", s.handleContribute)

		r.Get("/plans", s.handleListPlans)
		r.Get("/plans/{month}", s.handlePlan)
		r.Put("/plans/{month}/income", s.handlePlanIncome)
		r.Put("/plans/{month}/expenses", s.handlePlanExpenses)
		r.Post("/plans/{month}/payments", s.handlePayments)

		r.Get("/export/{table}", s.handleExport)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// Run serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Warm the snapshot so the first request is fast.
	if _, err := s.ctrl.Snapshot(ctx); err != nil {
		s.log.Warn().Err(err).Msg("initial load failed")
	}
	s.log.Info().Str("addr", s.cfg.Addr).Msg("budgetboard server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) onChange(c session.Change) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      "change",
		Timestamp: c.At,
		Table:     c.Table,
		Action:    c.Action,
		Detail:    c.Detail,
	}
	s.mu.Unlock()
	s.publishEvent(ev)
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

func (s *Service) status(ctx context.Context) Status {
	snap, err := s.ctrl.Snapshot(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:       s.startedAt,
		SnapshotAt:      snap.LoadedAt,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
	if err != nil {
		st.LastError = err.Error()
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("verbose") != "" {
		WriteJSON(w, http.StatusOK, s.status(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	WriteJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, Event{Type: "hello", Timestamp: time.Now()})
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
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
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
