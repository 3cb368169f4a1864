package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chess-with-kaelith/internal/i18n"
	"chess-with-kaelith/internal/nav"
	"chess-with-kaelith/internal/profile"
	"chess-with-kaelith/internal/settings"
	"chess-with-kaelith/pkg/config"
	"chess-with-kaelith/pkg/logging"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	table, err := i18n.Load(cfg.Paths.LocalesDir, logger)
	if err != nil {
		logger.Fatal("Failed to load localization tables", zap.Error(err))
	}

	settingsStore := settings.NewStore(cfg.Paths.SettingsPath(), table.Available(), logger)
	profileStore := profile.NewStore(cfg.Paths.ProfilesPath(), logger)

	controller := nav.New(logger, profileStore, settingsStore, table)

	// The rendering layer is out of process scope; these subscribers
	// stand in for it at the boundary.
	controller.OnScreenChanged(func(s nav.Screen) {
		logger.Info("Render screen",
			zap.String("screen", s.String()),
			zap.String("title", controller.Text("app_title")))
	})
	controller.OnTextRefreshed(func() {
		logger.Info("Display text refreshed",
			zap.String("language", controller.Language()))
	})
	controller.OnValidationFailed(func(rule string) {
		logger.Info("Show validation feedback", zap.String("rule", rule))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Host window requested exit")
		cancel()
	}()

	controller.Run(ctx)

	// A cancelled run stops mid-screen; walk the controller to its
	// terminal state so settings are flushed the same way a menu exit
	// would.
	if controller.Running() {
		controller.RequestExit()
	}

	logger.Info("Shell stopped")
}
