package types

// OverlayWindowConfig describes a secondary overlay window for the webview host
type OverlayWindowConfig struct {
	Label       string `json:"label"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Decorations bool   `json:"decorations"`
	Transparent bool   `json:"transparent"`
	SkipTaskbar bool   `json:"skipTaskbar"`
	Visible     bool   `json:"visible"`
	Width       int    `json:"width"`  // in pixels
	Height      int    `json:"height"` // in pixels

	// InitScript runs in the window before any page script
	InitScript string `json:"initScript"`
}
