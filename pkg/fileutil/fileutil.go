// =============================================================================
// Compute Sales - File Utilities
// =============================================================================
//
// This package handles report persistence and archival. The report has
// already been printed to stdout by the time these functions run, so every
// failure here is downgraded by the caller to a diagnostic: the console
// output has satisfied the primary contract.
//
// ARCHIVAL:
//   When an archive directory is configured, each persisted report is also
//   copied there under a generated name:
//
//     SalesResults_20240105_143000_5f3a....txt
//
//   The timestamp keeps archives browsable; the UUID keeps two runs within
//   the same second from colliding.
//
// =============================================================================

package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// REPORT PERSISTENCE
// =============================================================================

// WriteReport writes the report text to path, with a trailing newline.
func WriteReport(path, text string) error {
	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveReport copies the persisted report into archiveDir under a
// generated name, creating the directory if needed.
//
// RETURNS:
//   - The path of the archived copy.
//   - An error if the directory cannot be created or the copy fails.
func ArchiveReport(archiveDir, reportPath string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(archiveDir, ArchiveName(reportPath, time.Now()))
	if err := copyFile(reportPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive report: %w", err)
	}

	return archivePath, nil
}

// ArchiveName generates the archive file name for a report:
// base stem + timestamp + random UUID, keeping the original extension.
func ArchiveName(reportPath string, now time.Time) string {
	base := filepath.Base(reportPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	return fmt.Sprintf("%s_%s_%s%s",
		stem,
		now.Format("20060102_150405"),
		uuid.New().String(),
		ext,
	)
}

// copyFile copies src to dst, overwriting dst if it exists.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// =============================================================================
// HELPERS
// =============================================================================

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
