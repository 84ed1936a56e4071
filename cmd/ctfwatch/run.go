package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"ctfwatch/config"
	"ctfwatch/internal/adapters/email"
	"ctfwatch/internal/adapters/htb"
	"ctfwatch/internal/domain"
	"ctfwatch/internal/repository/jsonfile"
	"ctfwatch/internal/repository/postgres"
	"ctfwatch/internal/services"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Perform one watch pass: reminder sweep, then new-event discovery",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cachePath != "" {
			cfg.CacheFile = cachePath
		}
		if dryRun {
			cfg.Email.Provider = "noop"
		}
		if err := cfg.ValidateEmail(); err != nil {
			return err
		}
		logger := config.NewLogger()

		store, closeStore, err := newStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		mailer, err := email.NewMailer(email.MailerConfig{
			Provider:    cfg.Email.Provider,
			FromAddress: cfg.Email.From,
			FromName:    cfg.Email.FromName,
			SES: email.SESConfig{
				Region:          cfg.Email.SESRegion,
				AccessKeyID:     cfg.Email.SESAccessKey,
				SecretAccessKey: cfg.Email.SESSecretKey,
			},
			SMTP: email.SMTPConfig{
				Server:   cfg.Email.SMTPServer,
				Port:     cfg.Email.SMTPPort,
				Username: cfg.Email.SMTPUser,
				Password: cfg.Email.SMTPPass,
			},
		})
		if err != nil {
			return err
		}

		notifier := services.NewNotifyService(mailer, email.NewTemplateRenderer(), cfg.Email.To)
		feed := htb.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIBase, cfg.UserAgent, cfg.APIToken, logger)
		watcher := services.NewWatcher(feed, notifier, store, logger, cfg.DetailDelay)

		logger.Info("starting watch pass", "api_base", cfg.APIBase, "provider", cfg.Email.Provider)
		return watcher.Run(cmd.Context())
	},
}

// newStore selects the tracked-event store: Postgres when DATABASE_URL is
// set, the JSON snapshot file otherwise.
func newStore(cfg *config.Config, logger *slog.Logger) (domain.TrackedEventStore, func(), error) {
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return postgres.NewTrackedEventRepository(db), func() { db.Close() }, nil
	}
	return jsonfile.NewStore(cfg.CacheFile, logger), func() {}, nil
}
