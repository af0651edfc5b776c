package overlay

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	apperrors "filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"
	"filterdesk/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost records created windows in memory
type fakeHost struct {
	mu      sync.Mutex
	windows map[string]types.OverlayWindowConfig
	created []types.OverlayWindowConfig
	err     error
}

func newFakeHost() *fakeHost {
	return &fakeHost{windows: make(map[string]types.OverlayWindowConfig)}
}

func (f *fakeHost) HasWindow(label string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.windows[label]
	return ok
}

func (f *fakeHost) CreateWindow(_ context.Context, config types.OverlayWindowConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.windows[config.Label] = config
	f.created = append(f.created, config)
	return nil
}

var testOptions = Options{
	Title:         "Overlay",
	Width:         800,
	Height:        600,
	BlockedGlobal: "NitroAds",
}

func TestManager_CreateConfiguresWindow(t *testing.T) {
	host := newFakeHost()
	manager := NewManager(host, testOptions, logging.NewNopLogger())

	require.NoError(t, manager.Create(context.Background(), "tracker", "https://example.com/overlay?id=7"))

	require.Len(t, host.created, 1)
	config := host.created[0]
	assert.Equal(t, "tracker", config.Label)
	assert.Equal(t, "https://example.com/overlay?id=7", config.URL)
	assert.Equal(t, "Overlay", config.Title)
	assert.False(t, config.Decorations)
	assert.False(t, config.Transparent)
	assert.True(t, config.SkipTaskbar)
	assert.False(t, config.Visible)
	assert.Equal(t, 800, config.Width)
	assert.Equal(t, 600, config.Height)
	assert.Equal(t, BlockerScript("NitroAds"), config.InitScript)
}

func TestManager_CreateIsIdempotent(t *testing.T) {
	host := newFakeHost()
	manager := NewManager(host, testOptions, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, manager.Create(ctx, "tracker", "https://first.example.com"))
	require.NoError(t, manager.Create(ctx, "tracker", "https://second.example.com"))

	require.Len(t, host.created, 1)
	assert.Equal(t, "https://first.example.com", host.windows["tracker"].URL)
}

func TestManager_ExistingLabelSkipsURLCheck(t *testing.T) {
	host := newFakeHost()
	manager := NewManager(host, testOptions, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, manager.Create(ctx, "tracker", "https://example.com"))
	assert.NoError(t, manager.Create(ctx, "tracker", "not a url"))
	assert.Len(t, host.created, 1)
}

func TestManager_InvalidURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		contains string
	}{
		{"relative", "overlay/index.html", "relative URL without a base"},
		{"empty", "", "relative URL without a base"},
		{"bad host", "http://[::1", "missing ']' in host"},
		{"no host", "https://", "empty host"},
		{"bad escape", "https://example.com/%zz", "invalid URL escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			manager := NewManager(host, testOptions, logging.NewNopLogger())

			err := manager.Create(context.Background(), "tracker", tt.rawURL)

			require.Error(t, err)
			assert.True(t, apperrors.IsURLParse(err))
			assert.Contains(t, err.Error(), tt.contains)
			assert.Empty(t, host.created, "no window may be built for a bad URL")
		})
	}
}

func TestManager_EmptyLabel(t *testing.T) {
	host := newFakeHost()
	manager := NewManager(host, testOptions, logging.NewNopLogger())

	err := manager.Create(context.Background(), "  ", "https://example.com")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, host.created)
}

func TestManager_HostFailure(t *testing.T) {
	host := newFakeHost()
	host.err = errors.New("webview unavailable")
	manager := NewManager(host, testOptions, logging.NewNopLogger())

	err := manager.Create(context.Background(), "tracker", "https://example.com")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnknown, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "webview unavailable")
}

func TestParseTargetURL(t *testing.T) {
	for _, raw := range []string{"https://example.com", "http://localhost:8080/a", "file:///tmp/overlay.html", " https://padded.example.com "} {
		target, err := ParseTargetURL(raw)
		require.NoError(t, err, raw)
		assert.True(t, target.IsAbs())
		assert.Equal(t, strings.TrimSpace(raw), target.String())
	}
}
