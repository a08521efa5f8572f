package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/salespulse/salespulse/internal/analytics"
	analytichttp "github.com/salespulse/salespulse/internal/analytics/http"
	"github.com/salespulse/salespulse/internal/analytics/svg"
	"github.com/salespulse/salespulse/internal/app"
	"github.com/salespulse/salespulse/internal/imgshare"
	"github.com/salespulse/salespulse/internal/observability"
	"github.com/salespulse/salespulse/internal/tablestore"
	"github.com/salespulse/salespulse/internal/view"
)

type lineRenderer struct{}

func (lineRenderer) Line(width, height int, series []float64, labels []string, opts svg.LineOpts) (template.HTML, error) {
	return svg.Line(width, height, series, labels, opts)
}

type barRenderer struct{}

func (barRenderer) Bars(width, height int, series []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return svg.Bars(width, height, series, labels, opts)
}

func (barRenderer) HBars(width, height int, series []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return svg.HBars(width, height, series, labels, opts)
}

type pieRenderer struct{}

func (pieRenderer) Pie(size int, values []float64, labels []string, opts svg.PieOpts) (template.HTML, error) {
	return svg.Pie(size, values, labels, opts)
}

type heatmapRenderer struct{}

func (heatmapRenderer) Heatmap(width, height int, rows, cols []string, values [][]float64, opts svg.HeatmapOpts) (template.HTML, error) {
	return svg.Heatmap(width, height, rows, cols, values, opts)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	store := tablestore.New(dbpool)
	dashboardService := analytics.NewService(store)
	shares := imgshare.New(redisClient, cfg.ShareTTL)
	metrics := observability.NewMetrics()

	dashboardHandler := analytichttp.NewHandler(
		logger,
		dashboardService,
		templates,
		lineRenderer{},
		barRenderer{},
		pieRenderer{},
		heatmapRenderer{},
		shares,
		cfg.TopProducts,
	)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
