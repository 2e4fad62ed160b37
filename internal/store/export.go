package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cubedrop/internal/metrics"
)

type ExportData struct {
	RunMetadata
	Samples []metrics.Sample `json:"samples"`
}

// ExportJSON writes a run and its samples as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, samples []metrics.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: meta, Samples: samples})
}

func ExportJSONFile(path string, meta RunMetadata, samples []metrics.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, samples)
}
