package overlay

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	apperrors "filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"
	"filterdesk/internal/types"
)

// OpCreate names the overlay operation in errors and logs
const OpCreate = "create_overlay_window"

// WindowHost is the windowing subsystem that owns overlay windows
type WindowHost interface {
	HasWindow(label string) bool
	CreateWindow(ctx context.Context, config types.OverlayWindowConfig) error
}

// Options holds the fixed parts of every overlay window
type Options struct {
	Title         string
	Width         int
	Height        int
	BlockedGlobal string
}

// Manager creates overlay windows at most once per label
type Manager struct {
	host    WindowHost
	options Options
	script  string
	logger  logging.Logger
}

// NewManager creates an overlay manager on top of host
func NewManager(host WindowHost, options Options, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Manager{
		host:    host,
		options: options,
		script:  BlockerScript(options.BlockedGlobal),
		logger:  logger,
	}
}

// Create opens an overlay window labelled label showing rawURL. If the label is
// already open this is a successful no-op and rawURL is ignored. The URL is
// parsed before the host is asked for a window.
func (m *Manager) Create(ctx context.Context, label, rawURL string) error {
	if strings.TrimSpace(label) == "" {
		return apperrors.HandleValidationError(OpCreate, "label", label, "must not be empty")
	}

	if m.host.HasWindow(label) {
		m.logger.Debug("Overlay window already open", "label", label)
		return nil
	}

	target, err := ParseTargetURL(rawURL)
	if err != nil {
		return apperrors.HandleURLParseError(OpCreate, rawURL, err)
	}

	start := time.Now()
	if err := m.host.CreateWindow(ctx, m.WindowConfig(label, target)); err != nil {
		return apperrors.NewCommandErrorWithContext(OpCreate, err, apperrors.ErrCodeUnknown, map[string]string{
			"label": label,
		})
	}

	m.logger.Info("Overlay window created",
		"label", label,
		"url", target.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// WindowConfig builds the borderless, hidden, taskbar-less window description for label
func (m *Manager) WindowConfig(label string, target *url.URL) types.OverlayWindowConfig {
	return types.OverlayWindowConfig{
		Label:       label,
		URL:         target.String(),
		Title:       m.options.Title,
		Decorations: false,
		Transparent: false,
		SkipTaskbar: true,
		Visible:     false,
		Width:       m.options.Width,
		Height:      m.options.Height,
		InitScript:  m.script,
	}
}

// ParseTargetURL parses an external URL for an overlay. Relative references
// and web URLs without a host are rejected.
func ParseTargetURL(raw string) (*url.URL, error) {
	target, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if !target.IsAbs() {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errors.New("relative URL without a base")}
	}
	switch target.Scheme {
	case "http", "https", "ws", "wss":
		if target.Host == "" {
			return nil, &url.Error{Op: "parse", URL: raw, Err: errors.New("empty host")}
		}
	}
	return target, nil
}
