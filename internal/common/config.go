package common

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	Parser   ParserConfig
	Queue    QueueConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract        string
	Language         string
	HeicConverter    string
	TessdataDir      string
	ArtifactCacheDir string
}

// ParserConfig holds optional overrides of the parser's base confidences.
// Zero values keep the parser defaults.
type ParserConfig struct {
	EmailConfidence  float64
	PhoneConfidence  float64
	URLConfidence    float64
	SocialConfidence float64
	MinPhoneDigits   int
	MaxPhoneDigits   int
	JobTitleKeywords []string
}

// QueueConfig holds async processing configuration
type QueueConfig struct {
	Workers        int
	Size           int
	ProcessTimeout time.Duration
}

// legacyEnv maps config keys to the environment variables the daemon has always read.
var legacyEnv = map[string]string{
	"database.dsn":           "DB_URL",
	"server.grpc_addr":       "GRPC_ADDR",
	"ocr.heic_converter":     "HEIC_CONVERTER",
	"ocr.tessdata_dir":       "TESSDATA_PREFIX",
	"ocr.artifact_cache_dir": "ARTIFACT_CACHE_DIR",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.max_conn_lifetime", 30*time.Minute)
	v.SetDefault("database.max_conn_idle_time", 5*time.Minute)
	v.SetDefault("database.dial_timeout", 3*time.Second)
	v.SetDefault("database.statement_timeout", time.Duration(0))

	v.SetDefault("server.grpc_addr", ":8080")

	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.heic_converter", "magick")
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.artifact_cache_dir", "./tmp")

	v.SetDefault("parser.email_confidence", 0.0)
	v.SetDefault("parser.phone_confidence", 0.0)
	v.SetDefault("parser.url_confidence", 0.0)
	v.SetDefault("parser.social_confidence", 0.0)
	v.SetDefault("parser.min_phone_digits", 0)
	v.SetDefault("parser.max_phone_digits", 0)
	v.SetDefault("parser.job_title_keywords", []string{})

	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.size", 256)
	v.SetDefault("queue.process_timeout", 3*time.Minute)
}

// NewViper returns a viper instance wired for CARDSCAN_* environment variables,
// the daemon's legacy variables and an optional cardscan.yaml config file.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CARDSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, "CARDSCAN_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
	v.SetConfigName("cardscan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return v
}

// LoadConfig loads configuration from environment variables and, when present, a config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(NewViper(), "")
}

// LoadConfigFrom reads cfgFile (if set, or the default search path otherwise) into v
// and decodes the result. A missing default config file is not an error.
func LoadConfigFrom(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, NewAppError("CONFIG_ERROR", "read config file", err)
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              v.GetString("database.dsn"),
			MaxConns:         v.GetInt32("database.max_conns"),
			MinConns:         v.GetInt32("database.min_conns"),
			MaxConnLifetime:  v.GetDuration("database.max_conn_lifetime"),
			MaxConnIdleTime:  v.GetDuration("database.max_conn_idle_time"),
			DialTimeout:      v.GetDuration("database.dial_timeout"),
			StatementTimeout: v.GetDuration("database.statement_timeout"),
		},
		Server: ServerConfig{
			GRPCAddr: v.GetString("server.grpc_addr"),
		},
		OCR: OCRConfig{
			Tesseract:        v.GetString("ocr.tesseract"),
			Language:         v.GetString("ocr.language"),
			HeicConverter:    v.GetString("ocr.heic_converter"),
			TessdataDir:      v.GetString("ocr.tessdata_dir"),
			ArtifactCacheDir: v.GetString("ocr.artifact_cache_dir"),
		},
		Parser: ParserConfig{
			EmailConfidence:  v.GetFloat64("parser.email_confidence"),
			PhoneConfidence:  v.GetFloat64("parser.phone_confidence"),
			URLConfidence:    v.GetFloat64("parser.url_confidence"),
			SocialConfidence: v.GetFloat64("parser.social_confidence"),
			MinPhoneDigits:   v.GetInt("parser.min_phone_digits"),
			MaxPhoneDigits:   v.GetInt("parser.max_phone_digits"),
			JobTitleKeywords: v.GetStringSlice("parser.job_title_keywords"),
		},
		Queue: QueueConfig{
			Workers:        v.GetInt("queue.workers"),
			Size:           v.GetInt("queue.size"),
			ProcessTimeout: v.GetDuration("queue.process_timeout"),
		},
	}
}

// Validate checks the settings the daemon cannot run without.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	if c.Queue.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "queue.workers must be positive", ErrInvalidInput)
	}
	return nil
}

// GRPCListenAddr normalizes a bare port ("8080") into a listen address (":8080").
func (s ServerConfig) GRPCListenAddr() string {
	if s.GRPCAddr != "" && !strings.Contains(s.GRPCAddr, ":") {
		return ":" + s.GRPCAddr
	}
	return s.GRPCAddr
}
