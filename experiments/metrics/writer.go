package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RunRecord is one judged seed.
type RunRecord struct {
	Seed  uint64
	Score int64
	Error string
	RunMetric
}

// Summary aggregates a batch.
type Summary struct {
	Runs      int
	Failed    int
	Total     int64
	Mean      float64
	BestSeed  uint64
	BestScore int64
}

func Summarize(records []RunRecord) Summary {
	s := Summary{Runs: len(records)}
	for i, r := range records {
		if r.Error != "" {
			s.Failed++
		}
		s.Total += r.Score
		if i == 0 || r.Score > s.BestScore {
			s.BestScore = r.Score
			s.BestSeed = r.Seed
		}
	}
	if s.Runs > 0 {
		s.Mean = float64(s.Total) / float64(s.Runs)
	}
	return s
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes all files there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	path := filepath.Join(w.baseDir, "runs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"seed", "score", "error", "turns", "stations", "tracks", "waits", "served", "income", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.FormatUint(record.Seed, 10),
			strconv.FormatInt(record.Score, 10),
			record.Error,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Stations),
			strconv.Itoa(record.Tracks),
			strconv.Itoa(record.Waits),
			strconv.Itoa(record.Served),
			strconv.FormatInt(record.Income, 10),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write run record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush run records: %w", err)
	}
	return f.Close()
}

func (w *Writer) WriteSummary(s Summary) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	rows := [][]string{
		{"runs", "failed", "total", "mean", "best_seed", "best_score"},
		{
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.Failed),
			strconv.FormatInt(s.Total, 10),
			strconv.FormatFloat(s.Mean, 'f', 2, 64),
			strconv.FormatUint(s.BestSeed, 10),
			strconv.FormatInt(s.BestScore, 10),
		},
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return f.Close()
}
