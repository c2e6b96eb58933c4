package fileutil_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmetrics/compute-sales/pkg/fileutil"
)

func TestWriteReport_AppendsTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SalesResults.txt")

	require.NoError(t, fileutil.WriteReport(path, "**** SALES REPORT ****"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "**** SALES REPORT ****\n", string(data))
}

func TestWriteReport_UnwritablePath(t *testing.T) {
	err := fileutil.WriteReport(filepath.Join(t.TempDir(), "missing", "r.txt"), "x")
	assert.Error(t, err)
}

func TestArchiveReport_CopiesIntoCreatedDirectory(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "SalesResults.txt")
	require.NoError(t, fileutil.WriteReport(reportPath, "report body"))

	archiveDir := filepath.Join(dir, "archive") // does not exist yet
	archived, err := fileutil.ArchiveReport(archiveDir, reportPath)
	require.NoError(t, err)

	assert.True(t, fileutil.FileExists(archived))
	assert.Equal(t, archiveDir, filepath.Dir(archived))

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", string(data))

	// Original stays in place.
	assert.True(t, fileutil.FileExists(reportPath))
}

func TestArchiveName_Format(t *testing.T) {
	now := time.Date(2024, time.January, 5, 14, 30, 0, 0, time.UTC)
	name := fileutil.ArchiveName("out/SalesResults.txt", now)

	pattern := regexp.MustCompile(`^SalesResults_20240105_143000_[0-9a-f-]{36}\.txt$`)
	assert.Regexp(t, pattern, name)
}

func TestArchiveName_Unique(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t,
		fileutil.ArchiveName("SalesResults.txt", now),
		fileutil.ArchiveName("SalesResults.txt", now))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	assert.False(t, fileutil.FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, fileutil.FileExists(path))

	assert.False(t, fileutil.FileExists(dir), "directories do not count")
}
