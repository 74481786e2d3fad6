// Package report renders the per-run failures-per-day chart.
package report

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNotEnoughData is returned when fewer than two distinct days are
// represented; go-chart cannot derive an axis range from a single point.
var ErrNotEnoughData = errors.New("not enough data points for a chart")

// CountByDay buckets failure dates into per-day counts, sorted by day.
func CountByDay(dates []time.Time) ([]time.Time, []float64) {
	counts := map[time.Time]float64{}
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		counts[day]++
	}
	days := make([]time.Time, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	values := make([]float64, len(days))
	for i, day := range days {
		values[i] = counts[day]
	}
	return days, values
}

// Render writes a PNG chart of failures per day to path.
func Render(path string, dates []time.Time) error {
	days, values := CountByDay(dates)
	if len(days) < 2 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title: "Installation failures per day",
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "failures",
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0).WithAlpha(64),
					FillColor:   chart.GetDefaultColor(0).WithAlpha(64),
				},
				XValues: days,
				YValues: values,
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
