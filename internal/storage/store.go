package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/palette"
	"github.com/san-kum/gleam/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	FPS       float64            `json:"fps"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Runs      int                `json:"runs"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

var header = []string{
	"frame", "t", "dt", "phase", "run",
	"head_x", "head_y", "vel_x", "vel_y", "target_x", "target_y",
	"trail_len", "mix", "color",
}

// Save writes a trace under a new run directory and returns its id.
func (s *Store) Save(preset string, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: now,
		Seed:      cfg.Seed,
		Width:     cfg.Viewport.W,
		Height:    cfg.Viewport.H,
		FPS:       float64(time.Second) / float64(cfg.FrameInterval),
		Duration:  cfg.Duration.Seconds(),
		Frames:    result.Frames,
		Runs:      result.Runs,
		Metrics:   result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, framesFile), result.Samples); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, s := range samples {
		row := []string{
			strconv.FormatUint(s.Frame, 10), ff(s.T), ff(s.Dt), s.Phase.String(), strconv.Itoa(s.Run),
			ff(s.HeadX), ff(s.HeadY), ff(s.VelX), ff(s.VelY), ff(s.TargetX), ff(s.TargetY),
			strconv.Itoa(s.TrailLen), ff(s.Mix), s.Color.Hex(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns stored runs, newest first. Unreadable entries are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSamples reads a run's frames back. Rows that fail to parse are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if sample, ok := parseSample(rec); ok {
			samples = append(samples, sample)
		}
	}

	return samples, nil
}

func parseSample(rec []string) (sim.Sample, bool) {
	if len(rec) != len(header) {
		return sim.Sample{}, false
	}

	var (
		s    sim.Sample
		errs []error
	)
	pf := func(v string) float64 {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, err)
		}
		return f
	}
	pi := func(v string) int {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}

	frame, err := strconv.ParseUint(rec[0], 10, 64)
	if err != nil {
		return sim.Sample{}, false
	}
	s.Frame = frame
	s.T, s.Dt = pf(rec[1]), pf(rec[2])
	s.Phase = parsePhase(rec[3])
	s.Run = pi(rec[4])
	s.HeadX, s.HeadY = pf(rec[5]), pf(rec[6])
	s.VelX, s.VelY = pf(rec[7]), pf(rec[8])
	s.TargetX, s.TargetY = pf(rec[9]), pf(rec[10])
	s.TrailLen = pi(rec[11])
	s.Mix = pf(rec[12])

	c, err := palette.ParseHex(rec[13])
	if err != nil {
		errs = append(errs, err)
	}
	s.Color = c

	return s, len(errs) == 0
}

func parsePhase(v string) intro.Phase {
	for _, p := range []intro.Phase{intro.Carve, intro.Exit, intro.Clear} {
		if p.String() == v {
			return p
		}
	}
	return intro.Carve
}
