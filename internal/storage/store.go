package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/matrixdemo/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Rule        string             `json:"rule"`
	Pattern     string             `json:"pattern"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Density     float64            `json:"density"`
	Generations int                `json:"generations"`
	Metrics     map[string]float64 `json:"metrics"`
}

func NewMetadata(cfg sim.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Rule:        result.Rule,
		Pattern:     cfg.Pattern,
		Seed:        result.Seed,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Density:     cfg.Density,
		Generations: result.Generations,
		Metrics:     result.Metrics,
	}
}

// Save writes the run's metadata and its series under a new run directory
// and returns the run ID.
func (s *Store) Save(cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%d", result.Rule, result.Seed, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := NewMetadata(cfg, result)
	meta.ID = runID
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSeries(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteSeries writes one CSV row per generation: population and the number
// of cells that changed to reach it.
func WriteSeries(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"generation", "population", "changed"}); err != nil {
		return err
	}
	for i, pop := range result.Population {
		changed := "0"
		if i > 0 && i-1 < len(result.Changed) {
			changed = strconv.FormatFloat(result.Changed[i-1], 'f', -1, 64)
		}
		row := []string{strconv.Itoa(i), strconv.FormatFloat(pop, 'f', -1, 64), changed}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the population and changed columns of a run.
func (s *Store) LoadSeries(runID string) (population, changed []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	population = make([]float64, 0, len(records)-1)
	changed = make([]float64, 0, len(records)-2)
	for i, record := range records[1:] {
		pop, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		population = append(population, pop)
		if i == 0 {
			continue
		}
		c, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		changed = append(changed, c)
	}
	return population, changed, nil
}
