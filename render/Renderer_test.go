package render

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/samuelfneumann/smartcab/environment/trafficgrid"
)

func snapshot(t *testing.T) trafficgrid.Snapshot {
	t.Helper()
	w, err := trafficgrid.New(trafficgrid.DefaultConfig(), 4)
	if err != nil {
		t.Fatal(err)
	}
	return w.Snapshot()
}

func TestEncode(t *testing.T) {
	r, err := New(40)
	if err != nil {
		t.Fatal(err)
	}
	s := snapshot(t)

	var buf bytes.Buffer
	if err := r.Encode(&buf, s); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	width, height := r.Size(s.Rows, s.Cols)
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		t.Errorf("encode: want %v×%v image, have %v×%v", width, height,
			bounds.Dx(), bounds.Dy())
	}

	// The corner lies outside the grid and stays blank
	if c := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA); c.R != 255 ||
		c.G != 255 || c.B != 255 {
		t.Errorf("encode: want white background, have %v", c)
	}
}

func TestFrames(t *testing.T) {
	r, err := New(20)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewFrames(r, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := f.Save(0, 7, snapshot(t))
	if err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if _, err := png.Decode(file); err != nil {
		t.Errorf("save: frame is not a PNG: %v", err)
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New(2); err == nil {
		t.Errorf("new: tiny block size should be rejected")
	}
}
