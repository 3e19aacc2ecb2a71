package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Data source drivers.
const (
	SourceFile = "file"
	SourceS3   = "s3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Source tables.
	DataSource     string
	SectorDataPath string
	FuelDataPath   string
	HeaderRow      int

	// S3 settings, used when DataSource is "s3". Paths are object keys.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// MinIncome is the lowest income the recommender accepts.
	MinIncome float64

	// Render sink. Frames are published to Kafka when enabled.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaRenderTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	headerRow, err := parseHeaderRow()
	if err != nil {
		return nil, err
	}

	minIncome, err := parseMinIncome()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataSource:     strings.ToLower(sharedcfg.EnvOrDefault("DATA_SOURCE", SourceFile)),
		SectorDataPath: sharedcfg.EnvOrDefault("SECTOR_DATA_PATH", "data/State energy-related carbon dioxide emissions by sector.csv"),
		FuelDataPath:   sharedcfg.EnvOrDefault("FUEL_DATA_PATH", "data/State energy-related carbon dioxide emissions by fuel.csv"),
		HeaderRow:      headerRow,

		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    sharedcfg.EnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PathStyle: strings.EqualFold(os.Getenv("S3_PATH_STYLE"), "true"),

		MinIncome: minIncome,

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaRenderTopic: sharedcfg.EnvOrDefault("KAFKA_RENDER_TOPIC", "emissions-map-frames"),
	}

	switch cfg.DataSource {
	case SourceFile:
	case SourceS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("DATA_SOURCE is s3 but S3_BUCKET is not set")
		}
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: want file or s3", cfg.DataSource)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func parseHeaderRow() (int, error) {
	s := sharedcfg.EnvOrDefault("HEADER_ROW", "3")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid HEADER_ROW: must be a non-negative integer")
	}
	return n, nil
}

func parseMinIncome() (float64, error) {
	s := sharedcfg.EnvOrDefault("MIN_INCOME", "30000")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid MIN_INCOME: must be a positive number")
	}
	return v, nil
}
