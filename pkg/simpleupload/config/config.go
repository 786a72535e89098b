package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/audit"
	auditmemory "github.com/tendant/simple-upload/pkg/simpleupload/audit/memory"
	auditpg "github.com/tendant/simple-upload/pkg/simpleupload/audit/postgres"
	"github.com/tendant/simple-upload/pkg/simpleupload/netguard"
	ftpprobe "github.com/tendant/simple-upload/pkg/simpleupload/probe/ftp"
	gcsprobe "github.com/tendant/simple-upload/pkg/simpleupload/probe/gcs"
	httpprobe "github.com/tendant/simple-upload/pkg/simpleupload/probe/http"
	s3probe "github.com/tendant/simple-upload/pkg/simpleupload/probe/s3"
	"github.com/tendant/simple-upload/pkg/simpleupload/token"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:            "8080",
		Environment:     "development",
		DatabaseType:    "memory",
		DBSchema:        "upload",
		BlockLocalAddrs: true,
		UserAgent:       "simple-upload/1.0",
		EnableAudit:     true,
	}
}

// ServerConfig represents server configuration for the simple-upload service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Probe behavior
	BlockLocalAddrs bool          // default policy for probes that do not specify one
	UserAgent       string        // User-Agent header sent by the HTTP prober
	FTPDialTimeout  time.Duration // optional cap on the FTP control handshake

	// Token endpoints
	TokenSecret string

	// Audit trail configuration
	EnableAudit  bool
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (default: upload)

	// Optional cloud probers
	EnableS3Probe     bool
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3UsePathStyle    bool
	EnableGCSProbe    bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	return nil
}

// BuildResolver creates a Resolver from the server configuration. HTTP and
// FTP probers are always registered; S3 and GCS join when enabled.
func (c *ServerConfig) BuildResolver(ctx context.Context) (simpleupload.Resolver, error) {
	guard := netguard.New()

	httpProbe, err := httpprobe.New(httpprobe.Config{
		RedirectPolicy: guard,
		Provisioner:    guard,
		UserAgent:      c.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build http prober: %w", err)
	}

	ftpProbe, err := ftpprobe.New(ftpprobe.Config{DialTimeout: c.FTPDialTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to build ftp prober: %w", err)
	}

	options := []simpleupload.Option{
		simpleupload.WithProber(simpleupload.SchemeHTTP, httpProbe),
		simpleupload.WithProber(simpleupload.SchemeFTP, ftpProbe),
	}

	if c.EnableS3Probe {
		s3Probe, err := s3probe.New(ctx, s3probe.Config{
			Region:          c.S3Region,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
			Endpoint:        c.S3Endpoint,
			UsePathStyle:    c.S3UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build s3 prober: %w", err)
		}
		options = append(options, simpleupload.WithProber(simpleupload.SchemeS3, s3Probe))
	}

	if c.EnableGCSProbe {
		gcsProbe, err := gcsprobe.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build gcs prober: %w", err)
		}
		options = append(options, simpleupload.WithProber(simpleupload.SchemeGCS, gcsProbe))
	}

	return simpleupload.New(options...)
}

// BuildRecorder creates the audit recorder selected by the configuration.
func (c *ServerConfig) BuildRecorder(ctx context.Context) (audit.Recorder, error) {
	if !c.EnableAudit {
		return audit.NewNoopRecorder(), nil
	}

	switch c.DatabaseType {
	case "memory":
		return auditmemory.New(), nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, errors.New("database_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		// Optionally set search_path for the connection
		schema := c.DBSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return auditpg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// BuildCodec creates the token codec. The secret must be configured.
func (c *ServerConfig) BuildCodec() (*token.Codec, error) {
	if c.TokenSecret == "" {
		return nil, errors.New("token_secret is required")
	}
	return token.New([]byte(c.TokenSecret)), nil
}

// PingPostgres verifies connectivity to Postgres and optionally sets search_path for the session.
// It fails if the schema (when provided) does not exist.
func PingPostgres(databaseURL, schema string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
