package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Standing is one agent's aggregate tournament result.
type Standing struct {
	Agent     string
	Wins      int
	Losses    int
	Draws     int
	ThinkTime time.Duration
}

func (s Standing) Games() int {
	return s.Wins + s.Losses + s.Draws
}

func (s Standing) WinRate() float64 {
	if s.Games() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games())
}

type Writer struct {
	baseDir string
}

// NewWriter creates a folder under root named by the experiment and run ID.
func NewWriter(root, name, runID string) (*Writer, error) {
	baseDir := filepath.Join(root, name, runID)
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

func (w *Writer) WriteStandings(standings []Standing) error {
	// Create a file
	path := filepath.Join(w.baseDir, "standings.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create standings file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	header := []string{"agent", "games", "wins", "losses", "draws", "win_rate", "think_time"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write standings header: %w", err)
	}

	// Write each row
	for _, s := range standings {
		row := []string{
			s.Agent,
			strconv.Itoa(s.Games()),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.Draws),
			strconv.FormatFloat(s.WinRate(), 'f', 3, 64),
			s.ThinkTime.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write standings row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush standings: %w", err)
	}
	return nil
}
