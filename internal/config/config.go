package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Checkout struct {
	// DeliveryFee is added to the checkout summary only, never to the
	// cart total shown while browsing.
	DeliveryFee     string        `yaml:"DELIVERY_FEE" env:"DELIVERY_FEE" env-default:"4.99"`
	ProcessingDelay time.Duration `yaml:"PROCESSING_DELAY" env:"PROCESSING_DELAY" env-default:"2s"`
	ResetDelay      time.Duration `yaml:"RESET_DELAY" env:"RESET_DELAY" env-default:"3s"`
}

type Chat struct {
	ReplyDelay time.Duration `yaml:"CHAT_REPLY_DELAY" env:"CHAT_REPLY_DELAY" env-default:"1500ms"`
}

type Notify struct {
	SupplierEndpoint string        `yaml:"NOTIFY_SUPPLIER_URL" env:"NOTIFY_SUPPLIER_URL" env-default:""`
	SupplierEmail    string        `yaml:"NOTIFY_SUPPLIER_EMAIL" env:"NOTIFY_SUPPLIER_EMAIL" env-default:""`
	Timeout          time.Duration `yaml:"NOTIFY_TIMEOUT" env:"NOTIFY_TIMEOUT" env-default:"5s"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@gourmetgo.example"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"GourmetGo"`
}

type Geo struct {
	// Fallback coordinate used when the client supplies no position,
	// matching the behavior when geolocation permission is denied.
	DefaultLat float64 `yaml:"GEO_DEFAULT_LAT" env:"GEO_DEFAULT_LAT" env-default:"48.8566"`
	DefaultLng float64 `yaml:"GEO_DEFAULT_LNG" env:"GEO_DEFAULT_LNG" env-default:"2.3522"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"OTEL_ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"OTEL_EXPORTER_OTLP_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"dev"`
	HTTPServer   `yaml:"http_server"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Checkout     Checkout     `yaml:"checkout"`
	Chat         Chat         `yaml:"chat"`
	Notify       Notify       `yaml:"notify"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Geo          Geo          `yaml:"geo"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
