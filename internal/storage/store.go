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

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/sim"
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

// RunMetadata describes a saved run. Bodies holds the point count of each
// body, which is needed to read frames.csv back.
type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	TimeScale float64            `json:"time_scale"`
	Bodies    []int              `json:"bodies"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixMilli())
	meta.Timestamp = now
	meta.Frames = len(result.Frames)
	meta.Metrics = result.Metrics
	if len(meta.Bodies) == 0 && len(result.Frames) > 0 {
		for _, p := range result.Frames[0].Positions {
			meta.Bodies = append(meta.Bodies, len(p))
		}
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

	if err := WriteFramesCSV(csvFile, meta.Bodies, result.Frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteFramesCSV writes one row per frame: time, then x and y of every point
// of every body.
func WriteFramesCSV(out io.Writer, bodies []int, frames []sim.Frame) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for b, n := range bodies {
		for p := 0; p < n; p++ {
			header = append(header, fmt.Sprintf("b%d_p%d_x", b, p), fmt.Sprintf("b%d_p%d_y", b, p))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(fr.Time, 'f', 6, 64))
		for _, pts := range fr.Positions {
			for _, p := range pts {
				row = append(row,
					strconv.FormatFloat(p.X, 'f', 6, 64),
					strconv.FormatFloat(p.Y, 'f', 6, 64))
			}
		}
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

// LoadFrames reads a run's frames back. Centroids are recomputed as the
// unweighted mean of each body's points.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	width := 1
	for _, n := range meta.Bodies {
		width += 2 * n
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != width {
			return nil, fmt.Errorf("frames.csv row %d: expected %d fields, got %d", i+1, width, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("frames.csv row %d: %w", i+1, err)
			}
			vals[j] = v
		}

		fr := sim.Frame{
			Time:      vals[0],
			Positions: make([][]r2.Vec, len(meta.Bodies)),
			Centroids: make([]r2.Vec, len(meta.Bodies)),
		}
		k := 1
		for b, n := range meta.Bodies {
			pts := make([]r2.Vec, n)
			var sum r2.Vec
			for p := range pts {
				pts[p] = r2.Vec{X: vals[k], Y: vals[k+1]}
				sum = r2.Add(sum, pts[p])
				k += 2
			}
			fr.Positions[b] = pts
			if n > 0 {
				fr.Centroids[b] = r2.Scale(1/float64(n), sum)
			}
		}
		frames = append(frames, fr)
	}

	return frames, nil
}
