package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	captureimpl "github.com/lipika1080/np03frontend/external/capture"
	channelimpl "github.com/lipika1080/np03frontend/external/channel"
	configloader "github.com/lipika1080/np03frontend/external/config"
	controlimpl "github.com/lipika1080/np03frontend/external/control"
	"github.com/lipika1080/np03frontend/internal/config"
	"github.com/lipika1080/np03frontend/internal/session"
	"github.com/lipika1080/np03frontend/internal/ui"
	"github.com/samber/do/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found; using process environment")
	}

	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	injector := setupDI(cfg)

	controller, err := do.Invoke[*session.Controller](injector)
	if err != nil {
		slog.Error("failed to resolve session controller", "error", err)
		os.Exit(1)
	}
	slog.Info("startup: client ready", "room_id", controller.RoomID())

	program := tea.NewProgram(ui.New(controller), tea.WithAltScreen())
	controller.Aggregator().SetChapterTitlesNotify(func(titles string) {
		program.Send(ui.ChapterTitlesNoticeMsg{Titles: titles})
	})

	if _, err := program.Run(); err != nil {
		slog.Error("presentation loop failed", "error", err)
		os.Exit(1)
	}

	controller.Stop()
	if err := controller.Close(); err != nil {
		slog.Error("streaming channel close failed", "error", err)
	}
	slog.Info("shutdown complete")
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	// The terminal is owned by the TUI; structured logs go to stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	controlimpl.RegisterDI(injector)
	channelimpl.RegisterDI(injector)
	captureimpl.RegisterDI(injector)
	session.RegisterDI(injector)

	return injector
}
