package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL   string
	RunMigrations bool

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	CookieSecure     bool

	KafkaBrokers       []string
	ProductEventsTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisURL        string
	CatalogCacheTTL time.Duration

	RabbitMQURL string
	NotifyQueue string

	WhatsAppNumber        string
	AdminRedirectURL      string
	AdminEmails           []string
	CartSessionTTL        time.Duration
	CheckoutRedirectDelay time.Duration

	TracingEnabled bool
}

// Load reads the process environment, seeded from a local .env file when one exists.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RunMigrations: EnvBoolDefault("RUN_MIGRATIONS", true),

		JWTAccessSecret:  []byte(os.Getenv("JWT_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		CookieSecure:     EnvBoolDefault("COOKIE_SECURE", true),

		KafkaBrokers:       CSV(os.Getenv("KAFKA_BROKERS")),
		ProductEventsTopic: EnvDefault("PRODUCT_EVENTS_TOPIC", "product_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		RedisURL:        os.Getenv("REDIS_URL"),
		CatalogCacheTTL: EnvDurationDefault("CATALOG_CACHE_TTL", 10*time.Minute),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		NotifyQueue: EnvDefault("NOTIFY_QUEUE", "storefront.whatsapp.v1"),

		WhatsAppNumber:        EnvDefault("WHATSAPP_NUMBER", "+972595230839"),
		AdminRedirectURL:      EnvDefault("ADMIN_REDIRECT_URL", "https://brand-aura-magic.lovable.app/"),
		AdminEmails:           CSV(strings.ToLower(os.Getenv("ADMIN_EMAILS"))),
		CartSessionTTL:        EnvDurationDefault("CART_SESSION_TTL", 24*time.Hour),
		CheckoutRedirectDelay: EnvDurationDefault("CHECKOUT_REDIRECT_DELAY", 3*time.Second),

		TracingEnabled: EnvBoolDefault("TRACING_ENABLED", false),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
