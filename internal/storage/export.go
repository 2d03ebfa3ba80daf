package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/matrixdemo/internal/sim"
)

type ExportData struct {
	RunMetadata
	Population []float64 `json:"population"`
	Changed    []float64 `json:"changed"`
}

func ExportJSON(path string, cfg sim.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, cfg, result)
}

func WriteJSON(w io.Writer, cfg sim.Config, result *sim.Result) error {
	data := ExportData{
		RunMetadata: NewMetadata(cfg, result),
		Population:  result.Population,
		Changed:     result.Changed,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
