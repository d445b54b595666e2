// Package report writes the per-simulation text artifacts, the
// aggregate summary.csv, and per-module error files, built only from
// simulator.Result values and per-(planner, house) scores - it never
// reaches into simulator or task internals directly.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/elektrokombinacija/cleanbot-sim/internal/simulator"
)

// WriteSimulationReport writes the per-simulation text artifact for
// one (planner, house) pair to dir/<planner>-<house>.txt.
func WriteSimulationReport(dir, plannerName, houseName string, result simulator.Result) error {
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.txt", plannerName, houseName))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", path, err)
	}
	defer f.Close()
	return writeSimulationReport(f, result)
}

func writeSimulationReport(w io.Writer, result simulator.Result) error {
	inDock := "FALSE"
	if result.InDock {
		inDock = "TRUE"
	}

	var steps strings.Builder
	for _, s := range result.Steps {
		steps.WriteString(s.String())
	}

	_, err := fmt.Fprintf(w,
		"NumSteps = %d\nDirtLeft = %d\nStatus = %s\nInDock = %s\nScore = %d\nSteps:\n%s\n",
		result.NumSteps, result.DirtLeft, result.Status, inDock, result.Score, steps.String())
	return err
}

// WriteErrorArtifact writes dir/<moduleName>.error, for a planner or
// environment module that raised during load or run.
func WriteErrorArtifact(dir, moduleName string, cause error) error {
	path := filepath.Join(dir, moduleName+".error")
	return os.WriteFile(path, []byte(cause.Error()+"\n"), 0o644)
}

// Summary is the aggregate (planner, house) -> score table the CSV
// writer renders. Both axes are sorted before being written so the
// artifact is deterministic regardless of completion order.
type Summary struct {
	scores map[string]map[string]int // plannerName -> houseName -> score
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{scores: make(map[string]map[string]int)}
}

// Record adds one (planner, house) score to the summary.
func (s *Summary) Record(plannerName, houseName string, score int) {
	row, ok := s.scores[plannerName]
	if !ok {
		row = make(map[string]int)
		s.scores[plannerName] = row
	}
	row[houseName] = score
}

// WriteCSV writes the summary.csv artifact: a header row of
// "algorithm" followed by one column per house (sorted), then one row
// per planner (sorted) with its scores in header order.
func (s *Summary) WriteCSV(dir string) error {
	path := filepath.Join(dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", path, err)
	}
	defer f.Close()
	return s.writeCSV(f)
}

func (s *Summary) writeCSV(w io.Writer) error {
	houseSet := make(map[string]struct{})
	for _, row := range s.scores {
		for house := range row {
			houseSet[house] = struct{}{}
		}
	}
	houses := make([]string, 0, len(houseSet))
	for h := range houseSet {
		houses = append(houses, h)
	}
	sort.Strings(houses)

	planners := make([]string, 0, len(s.scores))
	for p := range s.scores {
		planners = append(planners, p)
	}
	sort.Strings(planners)

	cw := csv.NewWriter(w)
	header := append([]string{"algorithm"}, houses...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: writing csv header: %w", err)
	}

	for _, planner := range planners {
		row := make([]string, 0, len(houses)+1)
		row = append(row, planner)
		for _, house := range houses {
			score, ok := s.scores[planner][house]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%d", score))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: writing csv row for %s: %w", planner, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
