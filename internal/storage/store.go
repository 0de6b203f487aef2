package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/scroll"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var csvHeader = []string{"frame", "time", "target", "position", "velocity", "progress", "limit", "rewinding"}

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Ease       float64            `json:"ease"`
	FPS        float64            `json:"fps"`
	Frames     int                `json:"frames"`
	Content    float64            `json:"content"`
	Viewport   float64            `json:"viewport"`
	Metrics    map[string]float64 `json:"metrics"`
	Errors     []string           `json:"errors,omitempty"`
}

// Save writes the run under a fresh id and returns that id. ID and
// Timestamp in meta are filled in; Metrics defaults to the result's.
func (s *Store) Save(meta RunMetadata, result *engine.Result) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now
	if meta.Metrics == nil {
		meta.Metrics = result.Metrics
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSamples(csvFile, result.Samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", scroll.ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]engine.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", scroll.ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []engine.Sample{}, nil
	}

	samples := make([]engine.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		sample, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", framesFile, i+1, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func parseSample(record []string) (engine.Sample, error) {
	frame, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return engine.Sample{}, err
	}
	vals := make([]float64, 6)
	for i := range vals {
		vals[i], err = strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return engine.Sample{}, err
		}
	}
	rewinding, err := strconv.ParseBool(record[7])
	if err != nil {
		return engine.Sample{}, err
	}

	return engine.Sample{
		Frame: frame,
		Time:  vals[0],
		State: scroll.State{
			Target:   vals[1],
			Position: vals[2],
			Velocity: vals[3],
			Limit:    vals[5],
		},
		Progress:  vals[4],
		Rewinding: rewinding,
	}, nil
}
