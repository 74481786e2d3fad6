package report

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountByDay(t *testing.T) {
	dates := []time.Time{
		day(2023, 1, 2),
		day(2023, 1, 1),
		day(2023, 1, 2),
		day(2023, 1, 2),
	}
	days, values := CountByDay(dates)

	wantDays := []time.Time{day(2023, 1, 1), day(2023, 1, 2)}
	wantValues := []float64{1, 3}
	if !reflect.DeepEqual(days, wantDays) {
		t.Errorf("days = %v, want %v", days, wantDays)
	}
	if !reflect.DeepEqual(values, wantValues) {
		t.Errorf("values = %v, want %v", values, wantValues)
	}
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	dates := []time.Time{day(2023, 1, 1), day(2023, 1, 2), day(2023, 1, 2)}

	if err := Render(path, dates); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRenderNotEnoughData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	err := Render(path, []time.Time{day(2023, 1, 1)})
	if !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("Render() error = %v, want ErrNotEnoughData", err)
	}
}
