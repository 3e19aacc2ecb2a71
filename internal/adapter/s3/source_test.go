package s3

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/couchcryptid/emissions-dashboard/internal/config"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper serves GetObject from an in-memory bucket.
type mockRoundTripper struct {
	objects map[string]string
	status  int // forced status for every request when non-zero
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	xmlHeader := http.Header{"Content-Type": {"application/xml"}}
	if m.status != 0 {
		body := "<Error><Code>InternalError</Code><Message>boom</Message></Error>"
		return &http.Response{StatusCode: m.status, Body: io.NopCloser(strings.NewReader(body)), Header: xmlHeader, Request: req}, nil
	}

	body, ok := m.objects[key]
	if req.Method != http.MethodGet || !ok {
		msg := "<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>"
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(msg)), Header: xmlHeader, Request: req}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"text/csv"}},
		Request:    req,
	}, nil
}

func newMockSource(t *testing.T, rt http.RoundTripper) *Source {
	t.Helper()
	cfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion("us-east-1"),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RetryMaxAttempts = 1
	})
	return &Source{client: client, bucket: "emissions"}
}

func TestSource_Open(t *testing.T) {
	src := newMockSource(t, &mockRoundTripper{objects: map[string]string{
		"eia/fuel.csv": "State,Coal\nOhio,1\n",
	}})

	rc, err := src.Open(context.Background(), "eia/fuel.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "State,Coal\nOhio,1\n", string(data))
}

func TestSource_OpenMissingIsDataUnavailable(t *testing.T) {
	src := newMockSource(t, &mockRoundTripper{objects: map[string]string{}})

	_, err := src.Open(context.Background(), "eia/sector.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Contains(t, err.Error(), "s3://emissions/eia/sector.csv")
}

func TestSource_OpenOtherErrorsPassThrough(t *testing.T) {
	src := newMockSource(t, &mockRoundTripper{status: http.StatusForbidden})

	_, err := src.Open(context.Background(), "eia/sector.csv")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestNewSource_RequiresBucket(t *testing.T) {
	_, err := NewSource(context.Background(), &config.Config{S3Region: "us-east-1"})
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(context.Background(), &config.Config{
		S3Bucket:    "emissions",
		S3Region:    "us-west-2",
		S3Endpoint:  "http://localhost:9000",
		S3PathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "emissions", src.bucket)
	assert.Equal(t, "us-west-2", src.client.Options().Region)
	assert.True(t, src.client.Options().UsePathStyle)
}
