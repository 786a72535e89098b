package config

import (
	"fmt"
	"time"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithBlockLocalAddrs sets the default policy for probes against loopback,
// private, link-local and carrier-grade NAT addresses
func WithBlockLocalAddrs(block bool) Option {
	return func(c *ServerConfig) error {
		c.BlockLocalAddrs = block
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent by the HTTP prober
func WithUserAgent(agent string) Option {
	return func(c *ServerConfig) error {
		if agent == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		c.UserAgent = agent
		return nil
	}
}

// WithFTPDialTimeout caps the FTP control-connection handshake
func WithFTPDialTimeout(d time.Duration) Option {
	return func(c *ServerConfig) error {
		if d < 0 {
			return fmt.Errorf("ftp dial timeout cannot be negative")
		}
		c.FTPDialTimeout = d
		return nil
	}
}

// WithTokenSecret sets the shared secret for the token codec
func WithTokenSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.TokenSecret = secret
		return nil
	}
}

// WithAudit enables or disables probe audit recording
func WithAudit(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableAudit = enabled
		return nil
	}
}

// WithDatabase configures the audit database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithS3Probe enables the S3 prober
func WithS3Probe(region string) Option {
	return func(c *ServerConfig) error {
		if region == "" {
			region = "us-east-1" // Default region
		}
		c.EnableS3Probe = true
		c.S3Region = region
		return nil
	}
}

// WithS3Credentials sets static AWS credentials for the S3 prober. Without
// them the default credential chain applies.
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		c.S3AccessKeyID = accessKeyID
		c.S3SecretAccessKey = secretAccessKey
		return nil
	}
}

// WithS3Endpoint sets a custom S3 endpoint (for MinIO, LocalStack, etc.)
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		if endpoint == "" {
			return fmt.Errorf("S3 endpoint cannot be empty")
		}
		c.S3Endpoint = endpoint
		c.S3UsePathStyle = usePathStyle
		return nil
	}
}

// WithGCSProbe enables the GCS prober
func WithGCSProbe(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableGCSProbe = enabled
		return nil
	}
}

// WithDefaults is a convenience option that applies sensible defaults
// This is useful as a base before applying more specific options
func WithDefaults() Option {
	return func(c *ServerConfig) error {
		defaults := defaults()
		*c = defaults
		return nil
	}
}
