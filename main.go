package main

import (
	"embed"
	"log"

	"filterdesk/internal/app"
	"filterdesk/internal/config"
	"filterdesk/internal/infrastructure/logging"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

//go:embed all:frontend/dist
var assets embed.FS

// environment is set at build time: -ldflags "-X main.environment=development"
var environment = "production"

func main() {
	cfg, err := config.Load(environment)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Create an instance of the app structure
	application := app.NewApp(cfg, zapLogger)

	logLevel := logger.INFO
	if cfg.Log.Development {
		logLevel = logger.DEBUG
	}

	// Create application with options
	err = wails.Run(&options.App{
		Title:             "filterdesk",
		Width:             1100,
		Height:            720,
		MinWidth:          800,
		MinHeight:         560,
		DisableResize:     false,
		Fullscreen:        false,
		Frameless:         false,
		StartHidden:       false,
		HideWindowOnClose: false,
		AlwaysOnTop:       false,
		BackgroundColour:  &options.RGBA{R: 24, G: 24, B: 27, A: 255},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:             nil,
		Logger:           logging.NewWailsLoggerAdapter(zapLogger),
		LogLevel:         logLevel,
		OnStartup:        application.Startup,
		OnDomReady:       application.DomReady,
		OnBeforeClose:    application.BeforeClose,
		OnShutdown:       application.Shutdown,
		WindowStartState: options.Normal,
		Bind: []interface{}{
			application,
		},
		// Windows platform specific options
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
			WebviewUserDataPath:  "",
			ZoomFactor:           1.0,
		},
		// Mac platform specific options
		Mac: &mac.Options{
			TitleBar:             mac.TitleBarDefault(),
			Appearance:           mac.NSAppearanceNameDarkAqua,
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			About: &mac.AboutInfo{
				Title:   "filterdesk",
				Message: "Filter file manager",
			},
		},
	})

	if err != nil {
		zapLogger.Error("Application exited with error", "error", err)
		zapLogger.Sync()
		log.Fatal(err)
	}
}
