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

	"github.com/san-kum/gravwell/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "live", "launched", "captured", "escaped", "energy"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Launched  int                `json:"launched"`
	Captured  int                `json:"captured"`
	Escaped   int                `json:"escaped"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run as metadata.json plus one frames.csv row per frame and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := s.now()
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now
	meta.Frames = len(result.Frames)
	meta.Launched, meta.Captured, meta.Escaped = result.Launched, result.Captured, result.Escaped
	meta.Metrics = result.Metrics

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

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			strconv.FormatUint(f.Frame, 10),
			strconv.Itoa(f.Live),
			strconv.Itoa(f.Launched),
			strconv.Itoa(f.Captured),
			strconv.Itoa(f.Escaped),
			strconv.FormatFloat(f.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads back the per-frame rows of a run. Malformed rows are
// skipped.
func (s *Store) LoadFrames(runID string) ([]sim.FrameStats, error) {
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
		return []sim.FrameStats{}, nil
	}

	frames := make([]sim.FrameStats, 0, len(records)-1)
	for _, record := range records[1:] {
		f, ok := parseFrame(record)
		if !ok {
			continue
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFrame(record []string) (sim.FrameStats, bool) {
	if len(record) != len(frameHeader) {
		return sim.FrameStats{}, false
	}
	frame, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return sim.FrameStats{}, false
	}
	var counts [4]int
	for i := range counts {
		if counts[i], err = strconv.Atoi(record[i+1]); err != nil {
			return sim.FrameStats{}, false
		}
	}
	energy, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return sim.FrameStats{}, false
	}
	return sim.FrameStats{
		Frame:    frame,
		Live:     counts[0],
		Launched: counts[1],
		Captured: counts[2],
		Escaped:  counts[3],
		Energy:   energy,
	}, true
}
