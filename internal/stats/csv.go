package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// requiredColumns lists every column a stats CSV must carry, identity
// columns first, in the order the exporter writes them.
func requiredColumns() []string {
	cols := []string{"Player", "Surface", "League"}
	for _, f := range rateFields() {
		cols = append(cols, f.name)
	}
	return cols
}

// LoadCSV reads a player stats table from a CSV file. Every required
// column must be present and every rate value must parse as a float in
// [0,1]; otherwise the whole load fails.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats file %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats from %s: %w", path, err)
	}
	return table, nil
}

// ReadCSV parses a player stats table from CSV data.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns() {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var rows []PlayerRateStats
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record at line %d: %w", line+1, err)
		}
		line++

		row := PlayerRateStats{
			Player:  strings.TrimSpace(record[colIndex["Player"]]),
			Surface: strings.TrimSpace(record[colIndex["Surface"]]),
			League:  strings.TrimSpace(record[colIndex["League"]]),
		}

		values := make(map[string]float64, len(rateFields()))
		for _, f := range rateFields() {
			raw := strings.TrimSpace(record[colIndex[f.name]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for %s at line %d: %w", raw, f.name, line, err)
			}
			values[f.name] = v
		}
		applyRateValues(&row, values)

		rows = append(rows, row)
	}

	return NewTable(rows)
}

func applyRateValues(s *PlayerRateStats, v map[string]float64) {
	s.FirstServePercentage = v["FirstServePercentage"]
	s.AcePercentage = v["AcePercentage"]
	s.FirstServeWonPercentage = v["FirstServeWonPercentage"]
	s.SecondServeWonPercentage = v["SecondServeWonPercentage"]
	s.DoubleFaultPercentage = v["DoubleFaultPercentage"]
	s.ServiceGamesWonPercentage = v["ServiceGamesWonPercentage"]
	s.ReturnGamesWonPercentage = v["ReturnGamesWonPercentage"]
	s.PointsWonPercentage = v["PointsWonPercentage"]
	s.GamesWonPercentage = v["GamesWonPercentage"]
	s.SetsWonPercentage = v["SetsWonPercentage"]
	s.TieBreaksWonPercentage = v["TieBreaksWonPercentage"]
	s.BreakPointsSavedPercentage = v["BreakPointsSavedPercentage"]
	s.BreakPointsConvertedPercentage = v["BreakPointsConvertedPercentage"]
	s.FirstServeReturnPointsWonPercentage = v["FirstServeReturnPointsWonPercentage"]
	s.SecondServeReturnPointsWonPercentage = v["SecondServeReturnPointsWonPercentage"]
	s.ReturnPointsWonPercentage = v["ReturnPointsWonPercentage"]
	s.ServicePointsWonPercentage = v["ServicePointsWonPercentage"]
	s.BreakPointsFacedPerServiceGame = v["BreakPointsFacedPerServiceGame"]
	s.AceAgainstPercentage = v["AceAgainstPercentage"]
	s.AcesAgainstPerReturnGame = v["AcesAgainstPerReturnGame"]
	s.BreakPointChancesPerReturnGame = v["BreakPointChancesPerReturnGame"]
}
