package app

import (
	"context"

	"github.com/NasaVasa/stocky/internal/config"
	"github.com/NasaVasa/stocky/internal/delivery/telegram"
	"github.com/NasaVasa/stocky/internal/infra/db"
	"github.com/NasaVasa/stocky/internal/infra/log"
	"github.com/NasaVasa/stocky/internal/infra/market"
	"github.com/NasaVasa/stocky/internal/schedule"
	"github.com/NasaVasa/stocky/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot       *telegram.Bot
	scheduler *schedule.Runner
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	userRepo := db.NewUserRepository(dbConn)
	alertRepo := db.NewAlertRepository(dbConn)
	marketClient := market.NewClient(cfg.MarketDataBaseURL, cfg.MarketDataTimeout, logger)

	userUC := usecase.NewUserUsecase(userRepo)
	alertUC := usecase.NewAlertUsecase(userRepo, alertRepo)
	quoteUC := usecase.NewQuoteUsecase(marketClient)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	evaluator := usecase.NewEvaluator(userRepo, alertRepo, marketClient, notifier, logger, cfg.EvaluateConcurrency)
	handlers := telegram.NewHandlers(userUC, alertUC, quoteUC, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	scheduler := schedule.NewRunner(ctx, logger)
	if _, err := scheduler.Add(cfg.EvaluateCron, func(jobCtx context.Context) {
		report, err := evaluator.Evaluate(jobCtx)
		if err != nil {
			logger.Error("evaluation pass failed", zap.Error(err))
			return
		}
		if len(report.FailedCommits) > 0 {
			logger.Warn("evaluation pass left uncommitted triggers", zap.Uints("alert_ids", report.FailedCommits))
		}
	}); err != nil {
		return nil, err
	}

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{bot: bot, scheduler: scheduler, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("stocky service starting")
	a.scheduler.Start()
	a.logger.Info("stocky service started")
	return a.bot.Start(ctx)
}

func (a *App) Shutdown() {
	a.logger.Info("stocky service shutting down")
	a.scheduler.Stop()
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
