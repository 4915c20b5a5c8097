package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/remindbot/internal/ai"
	"github.com/example/remindbot/internal/bot"
	"github.com/example/remindbot/internal/config"
	"github.com/example/remindbot/internal/database"
	"github.com/example/remindbot/internal/logger"
	"github.com/example/remindbot/internal/mongodb"
	"github.com/example/remindbot/internal/onboarding"
	"github.com/example/remindbot/internal/reminders"
	"github.com/example/remindbot/internal/scheduler"
	"github.com/example/remindbot/internal/server"
	"github.com/example/remindbot/internal/store"
	"github.com/example/remindbot/internal/store/memory"
	"github.com/example/remindbot/internal/timeresolver"
	"github.com/example/remindbot/internal/transport/telegram"
	"github.com/example/remindbot/internal/transport/whatsapp"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "export" {
		os.Exit(runExport(os.Args[2:]))
	}

	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("bot stopped with error", zap.Error(err))
	}
	log.Info("bot stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	started := time.Now()

	st, degraded, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	var completer ai.Completer
	if c, err := ai.New(cfg.OpenAIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel, cfg.OracleTimeout); err == nil {
		completer = c
	} else {
		log.Warn("oracle disabled, every message gets the fallback reply", zap.Error(err))
	}
	assistant := ai.NewAssistant(completer, cfg.OracleTimeout, log.Named("ai"))

	var sender bot.Sender
	var tg *telegram.Telegram
	switch cfg.Transport {
	case config.TransportTelegram:
		tg, err = telegram.New(cfg.TelegramBotToken, "", cfg.TransportTimeout, log.Named("telegram"))
		if err != nil {
			return err
		}
		sender = tg
	default:
		sender = whatsapp.NewSender(cfg.WhatsAppAPIBase, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken, cfg.TransportTimeout)
	}

	manager := reminders.NewManager(st, cfg.StoreTimeout)
	b := bot.New(bot.Deps{
		Users:       st,
		Reminders:   manager,
		Onboarding:  onboarding.New(assistant, assistant),
		Interpreter: assistant,
		Resolver:    timeresolver.New(),
		Sender:      sender,
		Config:      &bot.BotConfig{StoreTimeout: cfg.StoreTimeout, SendTimeout: cfg.TransportTimeout},
		Logger:      log.Named("bot"),
	})

	dispatcher := scheduler.New(scheduler.Options{
		Interval:     cfg.DispatchInterval,
		Reminders:    manager,
		Users:        st,
		Sender:       sender,
		SendTimeout:  cfg.TransportTimeout,
		StoreTimeout: cfg.StoreTimeout,
		Logger:       log.Named("dispatch"),
	})
	if err := dispatcher.Start(); err != nil {
		return err
	}
	defer dispatcher.Stop()

	var webhook server.Webhook
	if cfg.Transport == config.TransportWhatsApp {
		webhook = whatsapp.NewWebhook(cfg.WhatsAppVerifyToken, cfg.WhatsAppAppSecret, b, log.Named("whatsapp"))
	}
	health := &server.HealthHandler{
		Store:            st,
		Degraded:         degraded,
		Transport:        cfg.Transport,
		OracleConfigured: assistant.Configured(),
		PingTimeout:      cfg.StoreTimeout,
		Started:          started,
		Log:              log.Named("health"),
	}

	if tg != nil {
		go tg.Run(ctx, b)
	}

	log.Info("bot started",
		zap.String("transport", cfg.Transport), zap.String("store", cfg.DBDriver), zap.Bool("degraded", degraded))
	return server.New(cfg.HTTPAddr, server.Routes(health, webhook), log.Named("http")).Run(ctx)
}

// openStore connects the configured backend with bounded retries. Outside production a
// backend that stays unreachable is replaced by the in-memory store.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Store, bool, error) {
	if cfg.DBDriver == config.DriverMemory {
		return memory.New(), false, nil
	}

	st, err := store.Connect(ctx, cfg.DBConnectAttempts, cfg.DBConnectBackoff, log, opener(cfg))
	if err == nil {
		return st, false, nil
	}
	if cfg.Production() || errors.Is(err, context.Canceled) {
		return nil, false, err
	}
	log.Error("store unavailable, continuing in degraded mode on the in-memory store", zap.Error(err))
	return memory.New(), true, nil
}

func opener(cfg config.Config) store.Opener {
	if cfg.DBDriver == config.DriverMongo {
		return func(ctx context.Context) (store.Store, error) {
			s, err := mongodb.Open(ctx, cfg.DBDSN, cfg.MongoDatabase)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	}
	return func(ctx context.Context) (store.Store, error) {
		db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}
