package overlay

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"filterdesk/internal/infrastructure/logging"
	"filterdesk/internal/types"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Events exchanged with the frontend, which owns the actual overlay webviews.
// The frontend answers every create event with opened once the window exists,
// and sends closed when it goes away.
const (
	EventOverlayCreate = "overlay:create"
	EventOverlayOpened = "overlay:opened"
	EventOverlayClosed = "overlay:closed"
)

// DefaultOpenTimeout bounds the wait for the frontend's opened event
const DefaultOpenTimeout = 10 * time.Second

var (
	// ErrHostNotAttached is returned when a window is requested before startup
	ErrHostNotAttached = errors.New("window host is not attached to the application")
	// ErrWindowNotOpened is returned when the frontend never confirms the window
	ErrWindowNotOpened = errors.New("overlay window was not opened by the frontend")
	// ErrWindowClosedEarly is returned when the window is closed before it was confirmed
	ErrWindowClosedEarly = errors.New("overlay window was closed before it opened")
)

// EmitFunc matches runtime.EventsEmit
type EmitFunc func(ctx context.Context, eventName string, optionalData ...interface{})

// OnFunc matches runtime.EventsOn
type OnFunc func(ctx context.Context, eventName string, callback func(optionalData ...interface{})) func()

// overlayWindow is a requested window. ready is closed once the request is
// settled; err is nil when the frontend confirmed the window.
type overlayWindow struct {
	config types.OverlayWindowConfig
	ready  chan struct{}
	err    error
}

func newOverlayWindow(config types.OverlayWindowConfig) *overlayWindow {
	return &overlayWindow{config: config, ready: make(chan struct{})}
}

func (w *overlayWindow) settled() bool {
	select {
	case <-w.ready:
		return true
	default:
		return false
	}
}

// WailsHost keeps the registry of overlay labels and asks the frontend to
// materialize new windows through the Wails event bus
type WailsHost struct {
	mu          sync.Mutex
	ctx         context.Context
	windows     map[string]*overlayWindow
	openTimeout time.Duration
	emit        EmitFunc
	on          OnFunc
	offs        []func()
	logger      logging.Logger
}

// NewWailsHost creates a host wired to the Wails runtime
func NewWailsHost(openTimeout time.Duration, logger logging.Logger) *WailsHost {
	return NewWailsHostWithEvents(runtime.EventsEmit, runtime.EventsOn, openTimeout, logger)
}

// NewWailsHostWithEvents creates a host with explicit event functions
func NewWailsHostWithEvents(emit EmitFunc, on OnFunc, openTimeout time.Duration, logger logging.Logger) *WailsHost {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if openTimeout <= 0 {
		openTimeout = DefaultOpenTimeout
	}
	return &WailsHost{
		windows:     make(map[string]*overlayWindow),
		openTimeout: openTimeout,
		emit:        emit,
		on:          on,
		logger:      logger,
	}
}

// Attach binds the host to the application context and starts listening for overlay events
func (h *WailsHost) Attach(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()

	h.offs = append(h.offs,
		h.on(ctx, EventOverlayOpened, h.handleOpened),
		h.on(ctx, EventOverlayClosed, h.handleClosed),
	)
}

// Detach stops listening for overlay events
func (h *WailsHost) Detach() {
	for _, off := range h.offs {
		if off != nil {
			off()
		}
	}
	h.offs = nil
}

// HasWindow reports whether the frontend confirmed a window for label
func (h *WailsHost) HasWindow(label string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	window, ok := h.windows[label]
	return ok && window.settled()
}

// CreateWindow asks the frontend for a window and waits until it is confirmed.
// A caller that finds the label already requested waits for that request
// instead of emitting again. Without confirmation the label is dropped.
func (h *WailsHost) CreateWindow(ctx context.Context, config types.OverlayWindowConfig) error {
	h.mu.Lock()
	if h.ctx == nil {
		h.mu.Unlock()
		return ErrHostNotAttached
	}
	window, requested := h.windows[config.Label]
	if !requested {
		window = newOverlayWindow(config)
		h.windows[config.Label] = window
	}
	appCtx := h.ctx
	h.mu.Unlock()

	if !requested {
		h.emit(appCtx, EventOverlayCreate, config)
	}
	return h.await(ctx, config.Label, window)
}

func (h *WailsHost) await(ctx context.Context, label string, window *overlayWindow) error {
	timer := time.NewTimer(h.openTimeout)
	defer timer.Stop()

	select {
	case <-window.ready:
		return window.err
	case <-timer.C:
		h.logger.Warn("Overlay window not confirmed by the frontend",
			"label", label,
			"timeout", h.openTimeout.String(),
		)
		return h.settle(label, window, ErrWindowNotOpened)
	case <-ctx.Done():
		return h.settle(label, window, ctx.Err())
	}
}

// settle resolves window with err unless it was resolved already, and returns the outcome
func (h *WailsHost) settle(label string, window *overlayWindow, err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.settleLocked(label, window, err)
	return window.err
}

func (h *WailsHost) settleLocked(label string, window *overlayWindow, err error) {
	if window.settled() {
		return
	}
	window.err = err
	if err != nil && h.windows[label] == window {
		delete(h.windows, label)
	}
	close(window.ready)
}

// Labels returns the confirmed overlay labels, sorted
func (h *WailsHost) Labels() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	labels := make([]string, 0, len(h.windows))
	for label, window := range h.windows {
		if window.settled() {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Forget drops label so it can be created again. A request still waiting
// for confirmation fails with ErrWindowClosedEarly.
func (h *WailsHost) Forget(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	window, ok := h.windows[label]
	if !ok {
		return
	}
	h.settleLocked(label, window, ErrWindowClosedEarly)
	delete(h.windows, label)
}

func (h *WailsHost) handleOpened(optionalData ...interface{}) {
	label := h.eventLabel(EventOverlayOpened, optionalData)
	if label == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	window, ok := h.windows[label]
	if !ok {
		// confirmed after the request timed out; the window exists, so track it
		window = newOverlayWindow(types.OverlayWindowConfig{Label: label})
		h.windows[label] = window
		h.logger.Warn("Overlay window confirmed late", "label", label)
	}
	h.settleLocked(label, window, nil)
	h.logger.Debug("Overlay window opened", "label", label)
}

func (h *WailsHost) handleClosed(optionalData ...interface{}) {
	label := h.eventLabel(EventOverlayClosed, optionalData)
	if label == "" {
		return
	}

	h.Forget(label)
	h.logger.Debug("Overlay window closed", "label", label)
}

// eventLabel accepts either the bare label or an object with a "label" field
func (h *WailsHost) eventLabel(event string, optionalData []interface{}) string {
	var label string
	if len(optionalData) > 0 {
		switch data := optionalData[0].(type) {
		case string:
			label = data
		case map[string]interface{}:
			label, _ = data["label"].(string)
		}
	}
	if label == "" {
		h.logger.Warn("Ignoring overlay event without label", "event", event, "data", optionalData)
	}
	return label
}
