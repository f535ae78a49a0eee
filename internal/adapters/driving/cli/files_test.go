package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

func TestFilesCmd_Use(t *testing.T) {
	assert.Equal(t, "files", filesCmd.Use)
}

func TestFilesCmd_ListsIngestedDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestionAPI = &fakeIngestionAPI{
		files: []domain.RemoteFile{
			{Name: "nta_tarquinia.pdf", Size: 2 << 20, Modified: 1700000000},
			{Name: "dpr_380.pdf", Size: 512, Modified: 1690000000},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"files"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "nta_tarquinia.pdf")
	assert.Contains(t, buf.String(), "2.0 MB")
	assert.Contains(t, buf.String(), "512 B")
}

func TestFilesCmd_EmptyBackend(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"files"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No documents ingested yet.")
}

func TestFilesCmd_RequiresSession(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	sessionService = &fakeSessionService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"files"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "urbanista login")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "100 B", formatSize(100))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "3.0 MB", formatSize(3<<20))
}
