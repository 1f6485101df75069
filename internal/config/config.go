package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, storage backend,
// certificate log client, monitoring loop, notifiers and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment default minimum log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// RateLimit is the number of requests per second allowed for a single client
		RateLimit float64 `env:"HTTP_RATE_LIMIT" env-default:"5" yaml:"rateLimit"`
		// RateBurst is the number of requests a single client may send at once
		RateBurst int `env:"HTTP_RATE_BURST" env-default:"10" yaml:"rateBurst"`
		// RestartDelay is how long to wait before restarting a listener that failed
		RestartDelay time.Duration `env:"HTTP_RESTART_DELAY" env-default:"15s" yaml:"restartDelay"`
	} `yaml:"http"`

	// Auth contains the keys used to mint and verify operator tokens
	Auth struct {
		// PublicKey is the PEM encoded RSA public key that verifies operator JWTs
		PublicKey string `env:"AUTH_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA private key used by the jwt command
		PrivateKey string `env:"AUTH_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"auth"`

	// Storage selects and configures the persistence backend
	Storage struct {
		// Driver is one of json, postgres or sqlite3
		Driver string `env:"STORAGE_DRIVER" env-default:"json" yaml:"driver"`

		// JSON contains the document paths of the json driver
		JSON struct {
			// DomainsPath is the file holding the monitored domain list
			DomainsPath string `env:"STORAGE_JSON_DOMAINS_PATH" env-default:"data/domains.json" yaml:"domainsPath"`
			// KnownSubdomainsPath is the file holding the known hostnames per domain
			KnownSubdomainsPath string `env:"STORAGE_JSON_KNOWN_SUBDOMAINS_PATH" env-default:"data/known_subdomains.json" yaml:"knownSubdomainsPath"` //nolint: lll
		} `yaml:"json"`

		// SQLite contains the sqlite3 driver settings
		SQLite struct {
			// Path is the database file
			Path string `env:"STORAGE_SQLITE_PATH" env-default:"data/ctwatch.db" yaml:"path"`
		} `yaml:"sqlite"`

		// Postgres contains all database connection related configurations
		Postgres struct {
			// Username for database authentication
			Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
			// Password for database authentication
			Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
			// Host is the database server hostname or IP address
			Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
			// Port is the database server port number
			Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
			// SslMode defines the SSL mode for the database connection
			SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
			// DatabaseName is the name of the database to connect to
			DatabaseName string `env:"DATABASE_NAME" env-default:"ctwatch" yaml:"name"`
			// MaxOpenConnections limits the number of open connections to the database
			MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
			// MaxIdleConnections limits the number of connections in the idle connection pool
			MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"2" yaml:"maxIdleConnections"`
			// ConnMaxLifetime is the maximum amount of time a connection may be reused
			ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
			// ConnMaxIdleTime is the maximum amount of time a connection may be idle
			ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	// CertLog configures the crt.sh client
	CertLog struct {
		// BaseURL is the crt.sh search endpoint
		BaseURL string `env:"CERTLOG_BASE_URL" env-default:"https://crt.sh/" yaml:"baseURL"`
		// UserAgent is sent with every request, empty uses a desktop browser string
		UserAgent string `env:"CERTLOG_USER_AGENT" env-default:"" yaml:"userAgent"`
		// Timeout bounds each individual request
		Timeout time.Duration `env:"CERTLOG_TIMEOUT" env-default:"60s" yaml:"timeout"`
		// MaxAttempts is the maximum number of requests made for one domain per cycle
		MaxAttempts int `env:"CERTLOG_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
	} `yaml:"certLog"`

	// Monitor configures the scan loop
	Monitor struct {
		// Interval is the pause between two cycles
		Interval time.Duration `env:"MONITOR_INTERVAL" env-default:"1h" yaml:"interval"`
		// DomainDelay is the pause between two consecutive domains within a cycle
		DomainDelay time.Duration `env:"MONITOR_DOMAIN_DELAY" env-default:"10s" yaml:"domainDelay"`
		// StartOnBoot starts monitoring as soon as the process is up
		StartOnBoot bool `env:"MONITOR_START_ON_BOOT" env-default:"false" yaml:"startOnBoot"`
		// SeedDomains are added to the monitored list at startup when missing
		SeedDomains []string `env:"MONITOR_SEED_DOMAINS" env-separator:"," yaml:"seedDomains"`
	} `yaml:"monitor"`

	// Notifier configures the outbound notification channels. Events are always logged.
	Notifier struct {
		// Timeout bounds each delivery request
		Timeout time.Duration `env:"NOTIFIER_TIMEOUT" env-default:"10s" yaml:"timeout"`

		// Telegram is enabled when both Token and ChatID are set
		Telegram struct {
			Token   string `env:"TELEGRAM_TOKEN" yaml:"token"`
			ChatID  string `env:"TELEGRAM_CHAT_ID" yaml:"chatID"`
			BaseURL string `env:"TELEGRAM_BASE_URL" env-default:"https://api.telegram.org" yaml:"baseURL"`
		} `yaml:"telegram"`

		// Slack is enabled when WebhookURL is set
		Slack struct {
			WebhookURL string `env:"SLACK_WEBHOOK_URL" yaml:"webhookURL"`
		} `yaml:"slack"`
	} `yaml:"notifier"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
