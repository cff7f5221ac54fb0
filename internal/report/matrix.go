package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
)

// Matrix holds the score for every temperature × humidity pair at a fixed
// duration and activity. Scores[i][j] belongs to Temperatures[i], Humidities[j].
type Matrix struct {
	Duration     int
	Activity     risktypes.Activity
	Temperatures []int
	Humidities   []int
	Scores       [][]int
}

// BuildMatrix scores the full accepted temperature and humidity ranges.
func BuildMatrix(evaluator risk.Evaluator, duration int, activity risktypes.Activity) (*Matrix, error) {
	m := &Matrix{Duration: duration, Activity: activity}
	for t := risktypes.MinTemperature; t <= risktypes.MaxTemperature; t++ {
		m.Temperatures = append(m.Temperatures, t)
	}
	for h := risktypes.MinHumidity; h <= risktypes.MaxHumidity; h++ {
		m.Humidities = append(m.Humidities, h)
	}

	m.Scores = make([][]int, len(m.Temperatures))
	for i, t := range m.Temperatures {
		m.Scores[i] = make([]int, len(m.Humidities))
		for j, h := range m.Humidities {
			res, err := evaluator.Evaluate(risktypes.Input{Temperature: t, Humidity: h, Duration: duration, Activity: activity})
			if err != nil {
				return nil, err
			}
			m.Scores[i][j] = res.Score
		}
	}
	return m, nil
}

// Score returns the score at a temperature and humidity, and false when the
// pair is outside the matrix.
func (m *Matrix) Score(temperature, humidity int) (int, bool) {
	i := temperature - risktypes.MinTemperature
	j := humidity - risktypes.MinHumidity
	if i < 0 || i >= len(m.Temperatures) || j < 0 || j >= len(m.Humidities) {
		return 0, false
	}
	return m.Scores[i][j], true
}

// WriteCSV writes the matrix with temperatures down the first column and
// humidities across the header.
func (m *Matrix) WriteCSV(w io.Writer) error {
	header := make([]string, 0, len(m.Humidities)+1)
	header = append(header, "temperature\\humidity")
	for _, h := range m.Humidities {
		header = append(header, strconv.Itoa(h))
	}

	rows := make([][]string, 0, len(m.Temperatures))
	for i, t := range m.Temperatures {
		row := make([]string, 0, len(m.Humidities)+1)
		row = append(row, strconv.Itoa(t))
		for _, s := range m.Scores[i] {
			row = append(row, strconv.Itoa(s))
		}
		rows = append(rows, row)
	}
	if err := writeCSV(w, header, rows); err != nil {
		return fmt.Errorf("failed to write matrix: %w", err)
	}
	return nil
}
