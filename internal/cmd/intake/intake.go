// Package intake wires configuration and dependencies for the intake service.
package intake

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/harborlight/intake/internal/archive"
	"github.com/harborlight/intake/internal/coversheet"
	"github.com/harborlight/intake/internal/journal"
	journalsqlite "github.com/harborlight/intake/internal/journal/sqlite"
	"github.com/harborlight/intake/internal/notify"
	"github.com/harborlight/intake/internal/pipeline"
	entrypoint "github.com/harborlight/intake/internal/platform/cmd"
	"github.com/harborlight/intake/internal/recordstore"
	"github.com/harborlight/intake/internal/recordstore/airtable"
	"github.com/harborlight/intake/internal/services/intake/api"
	server "github.com/harborlight/intake/internal/services/intake/app"
)

// Config holds intake command configuration.
type Config struct {
	Port   int    `env:"INTAKE_PORT" envDefault:"8080"`
	DBPath string `env:"INTAKE_DB_PATH"`

	AirtableAPIKey         string `env:"INTAKE_AIRTABLE_API_KEY"`
	AirtableBaseID         string `env:"INTAKE_AIRTABLE_BASE_ID"`
	AirtableTableID        string `env:"INTAKE_AIRTABLE_TABLE_ID"`
	AirtableClientsTableID string `env:"INTAKE_AIRTABLE_CLIENTS_TABLE_ID"`

	SMTPHost      string `env:"INTAKE_SMTP_HOST"`
	SMTPPort      int    `env:"INTAKE_SMTP_PORT" envDefault:"587"`
	SMTPUsername  string `env:"INTAKE_SMTP_USERNAME"`
	SMTPPassword  string `env:"INTAKE_SMTP_PASSWORD"`
	SMTPFrom      string `env:"INTAKE_SMTP_FROM"`
	OperatorEmail string `env:"INTAKE_OPERATOR_EMAIL"`

	S3Endpoint      string `env:"INTAKE_S3_ENDPOINT"`
	S3AccessKey     string `env:"INTAKE_S3_ACCESS_KEY"`
	S3SecretKey     string `env:"INTAKE_S3_SECRET_KEY"`
	S3Bucket        string `env:"INTAKE_S3_BUCKET"`
	S3UseSSL        bool   `env:"INTAKE_S3_USE_SSL" envDefault:"true"`
	S3PublicBaseURL string `env:"INTAKE_S3_PUBLIC_BASE_URL"`
}

// ParseConfig loads environment defaults and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "intake.db")
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "The intake HTTP server port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the submission journal database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the intake server with telemetry configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceIntake, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	var journalStore journal.Store
	store, err := openJournalStore(cfg.DBPath)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close journal store: %v", err)
			}
		}()
		journalStore = store
	}

	var gateway recordstore.Gateway
	if strings.TrimSpace(cfg.AirtableAPIKey) != "" {
		gateway = airtable.New(cfg.AirtableAPIKey)
	} else {
		log.Printf("record store API key absent; persistence disabled")
	}
	persister := recordstore.NewPersister(gateway)

	mailer := notify.NewMailer(notify.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.SMTPFrom,
		Recipient: cfg.OperatorEmail,
	}, nil)
	if !mailer.Configured() {
		log.Printf("email transport absent; cover-sheet delivery disabled")
	}

	uploader, err := archive.NewUploader(archive.Config{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return err
	}
	if !uploader.Configured() {
		log.Printf("blob storage absent; cover-sheet archiving disabled")
	}

	generator := coversheet.New(nil)
	orchestrator := pipeline.New(persister, generator, mailer, uploader, journalStore, nil)

	target := recordstore.Target{
		BaseID:         cfg.AirtableBaseID,
		TableID:        cfg.AirtableTableID,
		ClientsTableID: cfg.AirtableClientsTableID,
	}
	handlers := api.New(orchestrator, persister, generator, mailer, journalStore, target, nil)

	srv, err := server.New(cfg.Port, handlers.Handler())
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

func openJournalStore(path string) (*journalsqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := journalsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal store: %w", err)
	}
	return store, nil
}
