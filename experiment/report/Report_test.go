package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samuelfneumann/smartcab/experiment"
	"github.com/samuelfneumann/smartcab/timestep"
)

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	err := Chart(&buf, "Learning curve",
		Series{Name: "return", Data: []float64{-3, 4.5, 12}},
		Series{Name: "moving average", Data: []float64{-3, 0.75}},
	)
	if err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	for _, want := range []string{"Learning curve", "return",
		"moving average", "echarts"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart: output does not contain %q", want)
		}
	}

	if err := Chart(&buf, "empty"); err == nil {
		t.Errorf("chart: no series should be an error")
	}
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "returns.html")
	if err := WriteChart(path, "returns", Series{"return",
		[]float64{1, 2}}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("writeChart: empty chart file")
	}
}

func TestMovingAverage(t *testing.T) {
	have := MovingAverage([]float64{1, 3, 5, 7, 9}, 3)
	want := []float64{1, 2, 3, 5, 7}
	if diff := cmp.Diff(want, have, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("movingAverage: mismatch (-want +have):\n%s", diff)
	}

	if have := MovingAverage(nil, 3); len(have) != 0 {
		t.Errorf("movingAverage: want empty result, have %v", have)
	}
}

func TestPrinter(t *testing.T) {
	success := experiment.Result{Trial: 2, Steps: 14, Return: 21.5,
		Deadline: 6, End: timestep.TerminalStateReached, Exploration: 0.512}
	failure := experiment.Result{Trial: 3, Steps: 21, Return: -4,
		Deadline: -1, End: timestep.Timeout}

	var plain bytes.Buffer
	p := NewPrinter(&plain, false)
	if err := p.Trial(success); err != nil {
		t.Fatal(err)
	}
	if err := p.Trial(failure); err != nil {
		t.Fatal(err)
	}
	if err := p.Totals([]float64{21.5, -4}, []float64{1, 0}, 10); err != nil {
		t.Fatal(err)
	}

	out := plain.String()
	for _, want := range []string{
		"Trial   3: reached destination in 14 steps",
		"Trial   4: failed (Timeout) in 21 steps",
		"return 21.50",
		"2 trials: success rate 50.0%, mean return 8.75",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printer: output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("printer: colours disabled but escape sequences written")
	}

	var coloured bytes.Buffer
	if err := NewPrinter(&coloured, true).Trial(success); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(coloured.String(), "\x1b[") {
		t.Errorf("printer: colours enabled but no escape sequences written")
	}

	var empty bytes.Buffer
	if err := NewPrinter(&empty, false).Totals(nil, nil, 5); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(empty.String(), "No trials finished") {
		t.Errorf("printer: want message for no trials, have %q",
			empty.String())
	}
}
