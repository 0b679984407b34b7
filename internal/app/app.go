package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/database"
	"fitness-tracker/internal/services"
	"fitness-tracker/internal/social"
	"fitness-tracker/internal/telegram"
	"fitness-tracker/internal/utils"

	"github.com/robfig/cron/v3"
)

type Application struct {
	config     *config.Config
	store      database.Store
	bot        *telegram.Bot
	services   *services.ServiceManager
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())

	store, err := database.Open(ctx, cfg.Storage)
	if err != nil {
		cancel()
		return nil, err
	}

	if cfg.Share.Token == "" && cfg.Share.Target == config.ShareTargetHTTP {
		log.Printf("⚠️ SHARE_TOKEN is empty, status updates will likely be rejected")
	}
	poster := social.NewHTTPPoster(cfg.Share.URL, cfg.Share.Token, cfg.Share.Timeout)

	serviceManager, err := services.NewServiceManager(ctx, store, poster, utils.ClockIn(cfg.Schedule.Location))
	if err != nil {
		store.Close()
		cancel()
		return nil, err
	}

	if err := serviceManager.Tracker.EnsureGoals(ctx, cfg.DefaultGoals); err != nil {
		store.Close()
		cancel()
		return nil, err
	}

	app := &Application{
		config:     cfg,
		store:      store,
		services:   serviceManager,
		cron:       cron.New(cron.WithLocation(cfg.Schedule.Location)),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	if cfg.Telegram.Enabled() {
		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager)
		if err != nil {
			store.Close()
			cancel()
			return nil, err
		}
		app.bot = bot
		serviceManager.SetNotificationSender(bot)
		if cfg.Share.Target == config.ShareTargetTelegram {
			serviceManager.SetPoster(bot)
		}

		if err := app.setupCronJobs(); err != nil {
			store.Close()
			cancel()
			return nil, err
		}
	}

	return app, nil
}

// Interactive reports whether Start runs a long-lived bot.
func (a *Application) Interactive() bool {
	return a.bot != nil
}

func (a *Application) Start() error {
	if a.bot == nil {
		return fmt.Errorf("bot is not configured")
	}
	log.Println("🚀 Starting application...")

	go a.bot.Start(a.ctx)
	a.cron.Start()

	a.bot.SendMessageOrLogError("🏃 Fitness tracker is running. Use /help to see the commands.")

	log.Printf("✅ Application started. Bot: @%s", a.bot.GetUsername())
	return nil
}

// PrintReport writes the summary and the weekly report to w.
func (a *Application) PrintReport(w io.Writer) {
	fmt.Fprint(w, a.services.Tracker.Summary())
	fmt.Fprintln(w)
	fmt.Fprint(w, services.FormatWeeklyReport(a.services.Analytics.GetWeeklyReport()))
}

func (a *Application) Stop() error {
	log.Println("🛑 Stopping application...")

	a.cancelFunc()
	<-a.cron.Stop().Done()

	if err := a.store.Close(); err != nil {
		log.Printf("⚠️ Failed to close store: %v", err)
	}

	log.Println("✅ Application stopped")
	return nil
}

func (a *Application) setupCronJobs() error {
	_, err := a.cron.AddFunc(a.config.Schedule.SummaryCron, func() {
		a.services.Notification.SendDailySummary()
	})
	if err != nil {
		return fmt.Errorf("invalid SUMMARY_CRON: %w", err)
	}

	_, err = a.cron.AddFunc(a.config.Schedule.WeeklyCron, func() {
		a.services.Notification.SendWeeklyReport()
	})
	if err != nil {
		return fmt.Errorf("invalid WEEKLY_CRON: %w", err)
	}

	return nil
}
