// Package render draws snapshots of the traffic grid as PNG images
package render

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/smartcab/environment/trafficgrid"
	"github.com/samuelfneumann/smartcab/traffic"
)

// Colours of cars, by name
var colours = map[string][3]float64{
	"red":     {0.85, 0.1, 0.1},
	"blue":    {0.1, 0.2, 0.85},
	"cyan":    {0.0, 0.7, 0.8},
	"magenta": {0.8, 0.1, 0.7},
	"orange":  {1.0, 0.55, 0.0},
}

// Renderer draws snapshots of the traffic grid. Intersections are
// spaced blockSize pixels apart.
type Renderer struct {
	blockSize float64
}

// New returns a new Renderer with blocks of blockSize pixels
func New(blockSize int) (*Renderer, error) {
	if blockSize < 10 {
		return nil, fmt.Errorf("new: block size must be at least 10 pixels, "+
			"have %v", blockSize)
	}
	return &Renderer{blockSize: float64(blockSize)}, nil
}

// Size returns the width and height in pixels of the image of a grid
// with the argument number of rows and columns
func (r *Renderer) Size(rows, cols int) (width, height int) {
	return int(float64(cols+1) * r.blockSize), int(float64(rows+1) * r.blockSize)
}

// Draw returns an image of the snapshot
func (r *Renderer) Draw(s trafficgrid.Snapshot) image.Image {
	return r.draw(s).Image()
}

// Encode writes the image of the snapshot to w as a PNG
func (r *Renderer) Encode(w io.Writer, s trafficgrid.Snapshot) error {
	return r.draw(s).EncodePNG(w)
}

// SavePNG saves the image of the snapshot as a PNG at path
func (r *Renderer) SavePNG(path string, s trafficgrid.Snapshot) error {
	return r.draw(s).SavePNG(path)
}

// draw draws the snapshot onto a new context
func (r *Renderer) draw(s trafficgrid.Snapshot) *gg.Context {
	width, height := r.Size(s.Rows, s.Cols)
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Roads
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(r.blockSize / 10)
	for x := 1; x <= s.Cols; x++ {
		x0, y0 := r.point(traffic.Location{X: x, Y: 1})
		x1, y1 := r.point(traffic.Location{X: x, Y: s.Rows})
		dc.DrawLine(x0, y0, x1, y1)
	}
	for y := 1; y <= s.Rows; y++ {
		x0, y0 := r.point(traffic.Location{X: 1, Y: y})
		x1, y1 := r.point(traffic.Location{X: s.Cols, Y: y})
		dc.DrawLine(x0, y0, x1, y1)
	}
	dc.Stroke()

	// Intersections, with a green bar along the axis that may travel
	for _, light := range s.Lights {
		x, y := r.point(light.Location)
		half := r.blockSize / 6

		dc.SetRGB(0.85, 0.1, 0.1)
		dc.DrawRectangle(x-half, y-half, 2*half, 2*half)
		dc.Fill()

		dc.SetRGB(0.1, 0.75, 0.2)
		if light.NorthSouth {
			dc.DrawRectangle(x-half/3, y-half, 2*half/3, 2*half)
		} else {
			dc.DrawRectangle(x-half, y-half/3, 2*half, 2*half/3)
		}
		dc.Fill()
	}

	// Destination
	x, y := r.point(s.Destination)
	dc.SetRGB(0.85, 0.1, 0.1)
	dc.SetLineWidth(r.blockSize / 20)
	dc.DrawCircle(x, y, r.blockSize/3)
	dc.Stroke()

	for _, dummy := range s.Dummies {
		r.drawCar(dc, dummy, r.blockSize/8)
	}
	r.drawCar(dc, s.Primary, r.blockSize/6)

	return dc
}

// drawCar draws a car as a circle offset towards its heading, with a
// line pointing in its direction of travel
func (r *Renderer) drawCar(dc *gg.Context, car trafficgrid.Car,
	radius float64) {
	x, y := r.point(car.Location)
	dx := float64(car.Heading.X) * r.blockSize / 4
	dy := float64(car.Heading.Y) * r.blockSize / 4

	rgb, ok := colours[car.Colour]
	if !ok {
		rgb = [3]float64{0.5, 0.5, 0.5}
	}
	dc.SetRGB(rgb[0], rgb[1], rgb[2])
	dc.DrawCircle(x+dx, y+dy, radius)
	dc.Fill()

	dc.SetLineWidth(radius / 2)
	dc.DrawLine(x+dx, y+dy, x+2*dx, y+2*dy)
	dc.Stroke()
}

// point returns the pixel coordinates of an intersection
func (r *Renderer) point(l traffic.Location) (float64, float64) {
	return float64(l.X) * r.blockSize, float64(l.Y) * r.blockSize
}

// Frames saves numbered PNG frames of an experiment to a directory
type Frames struct {
	renderer *Renderer
	dir      string
}

// NewFrames returns a new Frames saving images drawn by renderer into
// dir, which is created if it does not exist
func NewFrames(renderer *Renderer, dir string) (*Frames, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newFrames: %w", err)
	}
	return &Frames{renderer: renderer, dir: dir}, nil
}

// Save saves the snapshot as the frame of step in trial, returning the
// path of the frame
func (f *Frames) Save(trial, step int, s trafficgrid.Snapshot) (string, error) {
	name := fmt.Sprintf("trial%03d_step%03d.png", trial+1, step)
	path := filepath.Join(f.dir, name)
	if err := f.renderer.SavePNG(path, s); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	return path, nil
}
