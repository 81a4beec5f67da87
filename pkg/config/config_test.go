package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET",
		"RESEND_API_KEY", "EMAIL_FROM",
		"EXPORT_S3_BUCKET", "EXPORT_S3_REGION",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	// No bucket configured means export archiving stays off.
	assert.Empty(t, cfg.Export.S3Bucket)
	assert.Equal(t, "eu-central-1", cfg.Export.S3Region)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("EXPORT_S3_BUCKET", "panel-archive")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "panel-archive", cfg.Export.S3Bucket)
}
