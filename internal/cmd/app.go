package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturbaldoramos/habitta-cli/internal/config"
	"github.com/arturbaldoramos/habitta-cli/internal/log"
	"github.com/arturbaldoramos/habitta-cli/internal/portal"
	"github.com/arturbaldoramos/habitta-cli/internal/session"
	"github.com/arturbaldoramos/habitta-cli/internal/storage"
)

// app holds the wired dependencies every command works against.
type app struct {
	cfg     *config.Config
	session *session.Service
	client  *portal.Client
	logger  *log.Logger
}

// newApp bootstraps the CLI: configuration, logging, session storage,
// the session service, and the portal client behind the gatekeeper
// transport. The service and client need each other (the transport reads
// the session token, the service calls the portal), so the API is bound
// in a second step.
func newApp(cmd *cobra.Command) (*app, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = log.ParseFormat(cfg.LogFormat)
	logger := log.New(logCfg)
	log.SetDefault(logger)

	sessionPath, err := config.SessionPath()
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(sessionPath)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	svc := session.NewService(backend, session.WithLogger(logger))

	transport := portal.NewTransport(svc.Token, svc.Logout)
	client := portal.NewClient(cfg.APIURL,
		portal.WithTransport(transport),
		portal.WithClientLogger(logger),
	)
	svc.BindAPI(client)

	if err := svc.Initialize(); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &app{
		cfg:     cfg,
		session: svc,
		client:  client,
		logger:  logger,
	}, nil
}
