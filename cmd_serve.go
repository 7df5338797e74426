package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"termfolio/internal/answer"
	"termfolio/internal/logging"
	"termfolio/internal/resume"
	"termfolio/internal/server"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the answer service and contact API",
	Long: `Serve the HTTP API the terminal talks to:

  GET  /health               liveness
  POST /api/query            answer a question about the resume
  GET  /api/resume           the resume document
  GET  /api/resume/download  the resume as an attachment
  POST /send                 store a contact message and relay it over SMTP

Messages are kept in a sqlite database. They are relayed only when SMTP and
a contact address are configured.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8000)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "sqlite database for contact messages (default termfolio.db)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabasePath = serveDB
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	doc, err := resume.Load(cfg.Resume)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, closeEngine, err := newEngine(ctx, cfg, doc, answer.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = closeEngine() }()

	store, err := server.OpenStore(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	var mailer server.Mailer
	if cfg.SMTPEnabled() {
		mailer = server.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		logger.Warn("SMTP not configured; contact messages are stored but not relayed")
	}

	srv, err := server.New(server.Config{
		Document:     doc,
		Querier:      engine,
		Store:        store,
		Mailer:       mailer,
		ContactEmail: cfg.ContactEmail,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	logger.Info("serving resume", "name", doc.Personal.Name, "db", cfg.DatabasePath)
	return srv.Serve(ctx, cfg.Addr)
}
