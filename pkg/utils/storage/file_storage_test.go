package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchiveExportRequiresInit(t *testing.T) {
	assert.False(t, Enabled())

	_, err := ArchiveExport(context.Background(), "submissions", []byte("id,customer_email\n"))
	assert.Error(t, err)
}
