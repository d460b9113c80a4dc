package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// ArchiveEntry is one named blob inside the archive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Archiver packs named blobs into a single downloadable archive.
type Archiver interface {
	Pack(entries []ArchiveEntry) ([]byte, error)
}

// ZipArchiver packs entries into a ZIP in the order given.
type ZipArchiver struct{}

func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

func (z *ZipArchiver) Pack(entries []ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		fw, err := zw.Create(e.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
