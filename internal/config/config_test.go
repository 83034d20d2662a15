package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sentiserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return dir
}

func TestLoad_DynamoDB(t *testing.T) {
	dir := writeConfig(t, `
server:
  addr: ":8080"
store: dynamodb
dynamodb:
  tableName: posts
  region: us-east-1
  endpoint: http://localhost:8000
  createTable: true
comprehend:
  region: us-east-1
  languageCode: en
worker:
  batchSize: 10
  pollInterval: 500ms
alerts:
  snsTopicArn: arn:aws:sns:us-east-1:123456789012:alerts
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "dynamodb", cfg.Store)
	assert.Equal(t, "posts", cfg.DynamoDB.TableName)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
	assert.True(t, cfg.DynamoDB.CreateTable)
	assert.Equal(t, "en", cfg.Comprehend.LanguageCode)
	assert.Equal(t, 10, cfg.Worker.BatchSize)
	assert.Equal(t, "500ms", cfg.Worker.PollInterval)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:alerts", cfg.Alerts.SNSTopicARN)
}

func TestLoad_Memory(t *testing.T) {
	cfg, err := Load(writeConfig(t, "store: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store)
	assert.Nil(t, cfg.DynamoDB)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "store: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{"missing store", "server:\n  addr: ':8080'\n", "store is required"},
		{"unknown store", "store: redis\n", `unknown store "redis"`},
		{"dynamodb without config", "store: dynamodb\n", "dynamodb config is required"},
		{"dynamodb without table", "store: dynamodb\ndynamodb:\n  region: us-east-1\n", "tableName is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
