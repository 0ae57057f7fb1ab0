package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"club_birthday_notifier/internal/app"
	"club_birthday_notifier/internal/domain/email"
	"club_birthday_notifier/internal/domain/ledger"
	"club_birthday_notifier/internal/infra/config"
	"club_birthday_notifier/internal/infra/contacts"
	idb "club_birthday_notifier/internal/infra/database"
	iemail "club_birthday_notifier/internal/infra/email"
	"club_birthday_notifier/internal/infra/ledgerfile"
	"club_birthday_notifier/internal/infra/logger"
	"club_birthday_notifier/internal/infra/scheduler"
	itelegram "club_birthday_notifier/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	daemon := flag.Bool("daemon", false, "run the in-process daily scheduler instead of a single check")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. Environment: %s, Group: %q, Ledger: %s, Email: %s",
		cfg.Environment, cfg.GroupName, cfg.LedgerBackend, cfg.EmailProvider)

	ctx := context.Background()

	// Send ledger
	var repo ledger.Repository
	switch cfg.LedgerBackend {
	case config.LedgerBackendPostgres:
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()
		repo = idb.NewPostgresLedgerRepository(db)
		log.Info("Postgres send ledger initialized.")
	default:
		repo = ledgerfile.NewCSVLedger(cfg.LedgerPath)
		log.Infof("CSV send ledger initialized at %s.", cfg.LedgerPath)
	}

	// Email transport
	var sender email.Sender
	switch cfg.EmailProvider {
	case config.EmailProviderResend:
		sender = iemail.NewResendSender(cfg.ResendAPIKey, cfg.FromAddress)
	default:
		sender = iemail.NewSMTPSender(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPassword, cfg.FromAddress)
	}
	composer := iemail.NewCardComposer(cfg.CardImagePath)

	// Contact source
	source, err := contacts.NewGoogleSource(ctx, cfg.CredentialsPath, cfg.TokenPath, cfg.GroupName, cfg.FallbackGroupID, log)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize Google Contacts source: %v", err)
	}
	log.Info("Google Contacts source initialized.")

	service := app.NewBirthdayService(source, repo, sender, composer, log)

	// Optional run summary to a club admin over Telegram
	var summary scheduler.SummarySink
	if cfg.SummaryEnabled() {
		bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
		if err != nil {
			log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
		}
		summary = itelegram.NewSummaryNotifier(itelegram.NewTelebotAdapter(bot), cfg.AdminTelegramID, log)
		log.Info("Telegram run summary enabled.")
	}

	if !*daemon {
		runOnce(ctx, service, summary, log)
		return
	}

	notifScheduler := scheduler.NewBirthdayScheduler(service, summary, log, cfg.CronSpecDaily)
	if err := notifScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	notifScheduler.Stop()
	log.Info("Shut down gracefully.")
}

// runOnce performs a single daily check, the mode an external scheduler
// (cron, GitHub Actions) invokes. Exit code 0 means the run completed,
// even with per-member failures; a non-zero exit means the run aborted
// before any member was processed.
func runOnce(ctx context.Context, service *app.BirthdayService, summary scheduler.SummarySink, log *logrus.Logger) {
	report, err := service.RunDailyCheck(ctx, time.Now())
	if err != nil {
		log.Fatalf("FATAL: Daily birthday check aborted: %v", err)
	}
	log.Info(report.Summary())
	if summary != nil {
		summary.Notify(report)
	}
}
