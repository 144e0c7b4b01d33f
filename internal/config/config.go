package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config aggregates every runtime setting of the API process.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	Security  SecurityConfig
	Websocket WebsocketConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            string
	PublicBaseURL   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type KafkaConfig struct {
	Brokers     []string
	GroupID     string
	TopicPrefix string
	// InstanceID tells the consumer groups of the running instances apart.
	InstanceID     string
	PublishTimeout time.Duration
}

// Enabled reports whether at least one broker address is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// ConsumerGroup is the group of this instance. Every instance must read every event
// for its own websocket clients, so instances never share a group.
func (k KafkaConfig) ConsumerGroup() string {
	return k.GroupID + "." + k.InstanceID
}

type SecurityConfig struct {
	BcryptCost int
	// ProtectWrites requires an authenticated user on resource POST/PUT/DELETE routes.
	ProtectWrites bool
}

type WebsocketConfig struct {
	SendBuffer int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8000"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "quai_antique"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "json"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(firstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			GroupID:     getEnv("KAFKA_GROUP_ID", "quai-antique-api"),
			TopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", "quaiantique."),
			InstanceID:  getEnv("KAFKA_INSTANCE_ID", defaultInstanceID()),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	var err error
	cfg.Server.ReadTimeout, err = getDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	collect(err)
	cfg.Server.WriteTimeout, err = getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	collect(err)
	cfg.Server.ShutdownTimeout, err = getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	collect(err)

	cfg.Database.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 25)
	collect(err)
	cfg.Database.MaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5)
	collect(err)
	cfg.Database.ConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	collect(err)
	cfg.Database.AutoMigrate, err = getBool("DB_AUTO_MIGRATE", true)
	collect(err)

	cfg.Security.BcryptCost, err = getInt("BCRYPT_COST", 12)
	collect(err)
	cfg.Security.ProtectWrites, err = getBool("SECURITY_PROTECT_WRITES", false)
	collect(err)

	cfg.Websocket.SendBuffer, err = getInt("WS_SEND_BUFFER", 16)
	collect(err)

	cfg.Kafka.PublishTimeout, err = getDuration("KAFKA_PUBLISH_TIMEOUT", 2*time.Second)
	collect(err)

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("DB_DRIVER: unsupported driver %q", cfg.Database.Driver))
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:quai_antique.db?_fk=1"
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// PostgresDSN builds a libpq style connection string unless DB_DSN overrides it.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// defaultInstanceID combines the host name with a random suffix so restarted
// containers sharing a host name still get their own group.
func defaultInstanceID() string {
	suffix := uuid.NewString()[:8]
	if host, err := os.Hostname(); err == nil && strings.TrimSpace(host) != "" {
		return strings.TrimSpace(host) + "-" + suffix
	}
	return suffix
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
