package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravwell/internal/sim"
)

type ExportData struct {
	RunMetadata
	Rows []sim.FrameStats `json:"rows"`
}

// ExportJSON writes a run and its frames as a single JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	meta.Frames = len(result.Frames)
	meta.Launched, meta.Captured, meta.Escaped = result.Launched, result.Captured, result.Escaped
	meta.Metrics = result.Metrics

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: meta, Rows: result.Frames})
}
