package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix — префикс переменных окружения по умолчанию.
const EnvPrefix = "KBATCH"

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"90s" envconfig:"WRITE_TIMEOUT"` // больше Kafka.ReadTimeout: POST ждёт конца сбора
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"3s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"10s" envconfig:"GRACEFUL_TIMEOUT"`
}

// Metrics — PushURL пустой: push в Pushgateway выключен.
type Metrics struct {
	PushURL string `envconfig:"PUSH_URL"`
	PushJob string `default:"kbatch-collect" envconfig:"PUSH_JOB"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"kbatch" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"localhost:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
	Insecure    bool    `default:"true" envconfig:"OTEL_INSECURE"`
}

// Postgres — пустой DSN отключает историю выполнений.
type Postgres struct {
	DSN      string `envconfig:"DSN"`
	MaxConns int32  `default:"10" envconfig:"MAX_CONNS"`
}

// Kafka — параметры выполнения по умолчанию (для CLI) и настройки клиента.
type Kafka struct {
	Topic          string        `envconfig:"TOPIC"`
	GroupID        string        `envconfig:"GROUP_ID"`
	BatchSize      int           `default:"10" envconfig:"BATCH_SIZE"`
	FromBeginning  bool          `default:"false" envconfig:"FROM_BEGINNING"`
	SessionTimeout time.Duration `default:"30s" envconfig:"SESSION_TIMEOUT"`
	ReadTimeout    time.Duration `default:"60s" envconfig:"READ_TIMEOUT"`
	ParseJSON      bool          `default:"true" envconfig:"PARSE_JSON"`

	DialTimeout       time.Duration `default:"10s" envconfig:"DIAL_TIMEOUT"`
	MinBytes          int           `default:"1" envconfig:"MIN_BYTES"`
	MaxBytes          int           `default:"10000000" envconfig:"MAX_BYTES"`
	MaxWait           time.Duration `default:"500ms" envconfig:"MAX_WAIT"`
	RetryInitial      time.Duration `default:"200ms" envconfig:"RETRY_INITIAL"`
	RetryMax          time.Duration `default:"5s" envconfig:"RETRY_MAX"`
	MaxFetchRetries   int           `default:"5" envconfig:"MAX_FETCH_RETRIES"`
	CommitTimeout     time.Duration `default:"5s" envconfig:"COMMIT_TIMEOUT"`
	StopTimeout       time.Duration `default:"5s" envconfig:"STOP_TIMEOUT"`
	DisconnectTimeout time.Duration `default:"10s" envconfig:"DISCONNECT_TIMEOUT"`
}

type Cache struct {
	Capacity int           `default:"1000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"10m" envconfig:"TTL"`
}

type Logger struct {
	IsProd     bool   `default:"false" envconfig:"IS_PROD"`
	File       string `envconfig:"FILE"`
	MaxSizeMB  int    `default:"100" envconfig:"MAX_SIZE_MB"`
	MaxBackups int    `default:"3" envconfig:"MAX_BACKUPS"`
	MaxAgeDays int    `default:"7" envconfig:"MAX_AGE_DAYS"`
}

// Credentials — источники учётных данных брокера: файл, затем переменные окружения.
type Credentials struct {
	File      string `envconfig:"FILE"`
	EnvPrefix string `default:"KBATCH_CREDENTIALS" envconfig:"ENV_PREFIX"`
}

type Config struct {
	HTTP        HTTP
	Metrics     Metrics
	Tracing     Tracing
	Postgres    Postgres
	Kafka       Kafka
	Cache       Cache
	Logger      Logger
	Credentials Credentials
}

func Load() (Config, error) {
	return LoadWithPrefix(EnvPrefix)
}

// LoadWithPrefix — то же, что Load, но с произвольным префиксом (тесты).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
