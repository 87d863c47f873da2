package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/meter-readings-bot/internal/app"
	"github.com/Spok95/meter-readings-bot/internal/config"
	"github.com/Spok95/meter-readings-bot/internal/db"
	"github.com/Spok95/meter-readings-bot/internal/jobs"
	"github.com/Spok95/meter-readings-bot/internal/logging"
	"github.com/Spok95/meter-readings-bot/internal/metrics"
	"github.com/Spok95/meter-readings-bot/internal/observability"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Конфигурация: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Логгер: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "meter-readings-bot")
	if err != nil {
		lg.Sugar.Warnw("sentry не инициализирован", "err", err)
	}
	defer flush()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("подключение к БД", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("миграция", "err", err)
	}

	app.StartHTTP(ctx, cfg.HTTPAddr, database)

	runner := jobs.New(ctx)
	runner.Every(30*time.Second, "db_ping", func(ctx context.Context) error {
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			return err
		}
		metrics.ObserveDBPing(time.Since(t0))
		return nil
	})

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		lg.Sugar.Fatalw("запуск бота", "err", err)
	}
	lg.Sugar.Infow("бот запущен", "username", bot.Self.UserName)

	dispatcher := app.NewDispatcher(bot, database, cfg, lg.Sugar)
	limiter := app.NewChatLimiter()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			lg.Sugar.Info("остановка бота")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			chatID := updateChatID(upd)
			if chatID == 0 {
				continue
			}
			// события одного чата обрабатываются строго по очереди
			go func(upd tgbotapi.Update) {
				unlock := limiter.Lock(chatID)
				defer unlock()
				dispatcher.HandleUpdate(ctx, upd)
			}(upd)
		}
	}
}

func updateChatID(upd tgbotapi.Update) int64 {
	switch {
	case upd.Message != nil:
		return upd.Message.Chat.ID
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		return upd.CallbackQuery.Message.Chat.ID
	}
	return 0
}
