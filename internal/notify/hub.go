package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rnitealiii/EliteMart/pkg/config"
	"github.com/rnitealiii/EliteMart/pkg/enums"
	pkgerrors "github.com/rnitealiii/EliteMart/pkg/errors"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/metrics"
)

// Toast is one ephemeral user notification. Toasts are never persisted.
type Toast struct {
	ID       string
	Message  string
	Severity enums.Severity
}

// Sink receives notification and loading events from the hub. The terminal
// renderer is the production sink; tests register recording sinks.
type Sink interface {
	ShowToast(toast Toast)
	DismissToast(id string)
	SetLoading(active bool)
}

// Hub fans ephemeral notifications out to subscribed sinks and auto-dismisses
// each toast after the configured interval.
type Hub struct {
	mu           sync.Mutex
	sinks        []Sink
	timers       map[string]*time.Timer
	dismissAfter time.Duration
	closed       bool

	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewHub builds the notification hub.
func NewHub(cfg config.NotifyConfig, logg *logger.Logger, m *metrics.StorefrontMetrics) *Hub {
	dismissAfter := cfg.DismissAfter
	if dismissAfter <= 0 {
		dismissAfter = 3 * time.Second
	}
	return &Hub{
		timers:       map[string]*time.Timer{},
		dismissAfter: dismissAfter,
		logg:         logg,
		metrics:      m,
	}
}

// Subscribe registers a sink for all subsequent events.
func (h *Hub) Subscribe(sink Sink) {
	if sink == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, sink)
}

// Notify shows a toast on every sink and schedules its dismissal.
func (h *Hub) Notify(ctx context.Context, message string, severity enums.Severity) {
	if !severity.IsValid() {
		severity = enums.SeverityInfo
	}
	toast := Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	sinks := append([]Sink(nil), h.sinks...)
	h.timers[toast.ID] = time.AfterFunc(h.dismissAfter, func() {
		h.dismiss(toast.ID)
	})
	h.mu.Unlock()

	h.metrics.IncNotification(severity.String())
	h.logg.Debug(h.logg.WithFields(ctx, map[string]any{
		"severity": severity.String(),
		"message":  message,
	}), "notification emitted")

	for _, sink := range sinks {
		sink.ShowToast(toast)
	}
}

// NotifyError surfaces an error as a toast using the wording and severity
// configured for its code.
func (h *Hub) NotifyError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if typed := pkgerrors.As(err); typed != nil {
		h.Notify(ctx, typed.PublicMessage(), typed.Severity())
		return
	}
	meta := pkgerrors.MetadataFor(pkgerrors.CodeInternal)
	h.Notify(ctx, meta.PublicMessage, meta.Severity)
}

// SetLoading signals the loading indicator on every sink.
func (h *Hub) SetLoading(active bool) {
	h.mu.Lock()
	sinks := append([]Sink(nil), h.sinks...)
	h.mu.Unlock()

	for _, sink := range sinks {
		sink.SetLoading(active)
	}
}

// Close stops all pending dismissal timers. Further notifications are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, timer := range h.timers {
		timer.Stop()
		delete(h.timers, id)
	}
}

func (h *Hub) dismiss(id string) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	delete(h.timers, id)
	sinks := append([]Sink(nil), h.sinks...)
	h.mu.Unlock()

	for _, sink := range sinks {
		sink.DismissToast(id)
	}
}
