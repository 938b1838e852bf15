package figstudio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type ZipEntry struct {
	Name string
	Data []byte
}

func addEntryToZip(archive *zip.Writer, entry ZipEntry, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     entry.Name,
		Method:   zip.Deflate,
		Modified: modified,
	}

	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(entry.Data)
	return err
}

// BuildZip packs entries into an in-memory deflate archive. Duplicate names are rejected.
func BuildZip(entries []ZipEntry) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	now := time.Now()
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("zip entry has no name: %w", ErrInvalidInput)
		}
		if _, ok := seen[entry.Name]; ok {
			return nil, fmt.Errorf("duplicate zip entry %q: %w", entry.Name, ErrInvalidInput)
		}
		seen[entry.Name] = struct{}{}

		if err := addEntryToZip(archive, entry, now); err != nil {
			return nil, fmt.Errorf("failed to add %s to zip: %w", entry.Name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// FileStem strips directories and the extension: "figs/a.pdf" -> "a".
func FileStem(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "figure"
	}
	return stem
}

// PageFileName gives "<stem>_P<page>.png".
func PageFileName(source string, page int) string {
	return fmt.Sprintf("%s_P%d.png", FileStem(source), page)
}
