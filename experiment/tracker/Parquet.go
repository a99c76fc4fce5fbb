package tracker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Parquet tracks Records and saves them as a zstd compressed parquet
// file with one row per Record
type Parquet struct {
	records  []Record
	filename string
}

// NewParquet returns a new Parquet Tracker which will save its data at
// the specified location filename
func NewParquet(filename string) *Parquet {
	return &Parquet{filename: filename}
}

// Track caches r for saving later
func (p *Parquet) Track(r Record) {
	p.records = append(p.records, r)
}

// Save saves the tracked Records to disk. The file is written to a
// temporary path first and renamed into place.
func (p *Parquet) Save() error {
	if err := os.MkdirAll(filepath.Dir(p.filename), 0o755); err != nil {
		return fmt.Errorf("save: create output dir: %w", err)
	}

	tmpPath := p.filename + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, p.records,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "sweep_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, p.filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: rename parquet: %w", err)
	}
	return nil
}

// LoadParquet loads and returns the Records saved by a Parquet Tracker
func LoadParquet(filename string) ([]Record, error) {
	records, err := parquet.ReadFile[Record](filename)
	if err != nil {
		return nil, fmt.Errorf("loadParquet: %w", err)
	}
	return records, nil
}
