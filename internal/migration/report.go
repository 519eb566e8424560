package migration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emrgen/inquests-migration/internal/compress"
	"github.com/emrgen/inquests-migration/internal/resolve"
	"github.com/emrgen/inquests-migration/internal/validate"
	"github.com/google/uuid"
)

type StageReport struct {
	Name     string        `json:"name"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
}

// Report summarises a run. It is filled in as stages complete, so a failed
// run reports the stages that did commit.
type Report struct {
	RunID      uuid.UUID
	Started    time.Time
	Finished   time.Time
	Stages     []StageReport
	Violations []validate.Violation
	Tables     *resolve.Tables
}

// Manifest is the persisted record of a run.
type Manifest struct {
	RunID       uuid.UUID            `json:"run_id"`
	Started     time.Time            `json:"started"`
	Finished    time.Time            `json:"finished"`
	Compression string               `json:"compression"`
	Warnings    int64                `json:"warnings"`
	Stages      []StageReport        `json:"stages"`
	Violations  []validate.Violation `json:"violations"`
	Tables      resolve.Snapshot     `json:"tables"`
}

func (r *Report) Manifest(warnings int64) *Manifest {
	m := &Manifest{
		RunID:      r.RunID,
		Started:    r.Started,
		Finished:   r.Finished,
		Warnings:   warnings,
		Stages:     r.Stages,
		Violations: r.Violations,
	}
	if r.Tables != nil {
		m.Tables = r.Tables.Snapshot()
	}
	return m
}

const manifestPrefix = "manifest-"

// WriteManifest writes m to dir as manifest-<run id>.json, encoded by c. The
// file suffix names the compression so ReadManifest can decode it.
func WriteManifest(dir string, c compress.Compress, m *Manifest) (string, error) {
	m.Compression = c.Name()

	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	encoded, err := c.Encode(data)
	if err != nil {
		return "", fmt.Errorf("failed to compress manifest: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, manifestPrefix+m.RunID.String()+".json"+compress.Extension(c))
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := compress.New(compressionOf(path))
	if err != nil {
		return nil, err
	}
	decoded, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(decoded, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

func compressionOf(path string) string {
	for _, name := range []string{compress.NameGZip, compress.NameLZ4, compress.NameBrotli} {
		c, _ := compress.New(name)
		if strings.HasSuffix(path, compress.Extension(c)) {
			return name
		}
	}
	return compress.NameNop
}
