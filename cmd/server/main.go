package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jalenlum/email-list-backend/internal/auth"
	"github.com/jalenlum/email-list-backend/internal/config"
	"github.com/jalenlum/email-list-backend/internal/httpapi"
	"github.com/jalenlum/email-list-backend/internal/logging"
	"github.com/jalenlum/email-list-backend/internal/mail"
	"github.com/jalenlum/email-list-backend/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "email-list-backend",
		Usage: "Signup, email verification, and per-project email collection lists",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "override the HTTP listen address"},
			&cli.StringFlag{Name: "dsn", Usage: "override the database DSN"},
			&cli.BoolFlag{Name: "debug", Usage: "log request payloads"},
			&cli.BoolFlag{Name: "hashid", Usage: "derive user ids from the signup email"},
		},
		Action: run,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger := logging.NewZerologLogger(zlog)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if addr := c.String("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if dsn := c.String("dsn"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.InitSchema(c.Context, db); err != nil {
		return err
	}

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	auther := auth.NewAuthenticator(repo, cfg).WithLogger(logger)

	mailer := mail.NewSMTPMailer(mail.Config{
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
		From:     cfg.MailFrom,
		BaseURL:  cfg.BaseURL,
	})

	server := httpapi.New(repo, auther, mailer,
		httpapi.WithLogger(logger),
		httpapi.WithDebug(c.Bool("debug")),
		httpapi.WithDeterministicIDs(c.Bool("hashid")),
	)

	go func() {
		<-c.Context.Done()
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting server", "addr", cfg.HTTPAddr)
	return server.Listen(cfg.HTTPAddr)
}
