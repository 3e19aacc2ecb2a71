package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, SourceFile, cfg.DataSource)
	assert.Equal(t, "data/State energy-related carbon dioxide emissions by sector.csv", cfg.SectorDataPath)
	assert.Equal(t, "data/State energy-related carbon dioxide emissions by fuel.csv", cfg.FuelDataPath)
	assert.Equal(t, 3, cfg.HeaderRow)
	assert.Empty(t, cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.False(t, cfg.S3PathStyle)
	assert.Equal(t, 30000.0, cfg.MinIncome)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "emissions-map-frames", cfg.KafkaRenderTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_SOURCE", "S3")
	t.Setenv("SECTOR_DATA_PATH", "eia/sector.csv")
	t.Setenv("FUEL_DATA_PATH", "eia/fuel.csv")
	t.Setenv("HEADER_ROW", "0")
	t.Setenv("S3_BUCKET", "emissions")
	t.Setenv("S3_REGION", "us-west-2")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_PATH_STYLE", "true")
	t.Setenv("MIN_INCOME", "45000")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_RENDER_TOPIC", "frames")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, SourceS3, cfg.DataSource)
	assert.Equal(t, "eia/sector.csv", cfg.SectorDataPath)
	assert.Equal(t, "eia/fuel.csv", cfg.FuelDataPath)
	assert.Equal(t, 0, cfg.HeaderRow)
	assert.Equal(t, "emissions", cfg.S3Bucket)
	assert.Equal(t, "us-west-2", cfg.S3Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
	assert.True(t, cfg.S3PathStyle)
	assert.Equal(t, 45000.0, cfg.MinIncome)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "frames", cfg.KafkaRenderTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidHeaderRow(t *testing.T) {
	for _, v := range []string{"-1", "three"} {
		t.Setenv("HEADER_ROW", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "HEADER_ROW")
	}
}

func TestLoad_InvalidMinIncome(t *testing.T) {
	for _, v := range []string{"0", "-5", "lots"} {
		t.Setenv("MIN_INCOME", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "MIN_INCOME")
	}
}

func TestLoad_InvalidDataSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "ftp")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_SOURCE")
}

func TestLoad_S3WithoutBucket(t *testing.T) {
	t.Setenv("DATA_SOURCE", "s3")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")
}
