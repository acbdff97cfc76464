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

	"github.com/san-kum/beamline/internal/phase"
	"github.com/san-kum/beamline/internal/ring"
)

// Store persists tracking runs under a base directory, one directory
// per run holding metadata.json and the turn-by-turn monitor data.
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Turns     int       `json:"turns"`
	Particles int       `json:"particles"`
	Survived  int       `json:"survived"`
	LossTurn  []int     `json:"loss_turn"`
}

// Save writes a run directory and returns the run id.
func (s *Store) Save(name string, seed int64, result *ring.Result, rec *ring.Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Turns:     result.Turns,
		Particles: result.Count,
		Survived:  result.Survived,
		LossTurn:  result.LossTurn,
	}

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

	if rec == nil || len(rec.Coords) == 0 {
		return runID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "coords.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"turn", "x", "px", "y", "py", "delta", "ct"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i, v := range rec.Coords {
		row := make([]string, 0, phase.Dim+1)
		row = append(row, strconv.Itoa(rec.Turns[i]))
		for _, c := range v {
			row = append(row, strconv.FormatFloat(c, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Load reads run metadata back.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta RunMetadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns the ids of all stored runs, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ExportJSON writes the metadata of a run to path (or stdout when path
// is empty).
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
