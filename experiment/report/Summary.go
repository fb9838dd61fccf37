package report

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/smartcab/experiment"
	"gonum.org/v1/gonum/stat"
)

// Printer writes coloured summaries of an experiment
type Printer struct {
	w  io.Writer
	au aurora.Aurora
}

// NewPrinter returns a Printer writing to w. If colours is false, no
// escape sequences are written.
func NewPrinter(w io.Writer, colours bool) *Printer {
	return &Printer{w: w, au: aurora.NewAurora(colours)}
}

// Trial writes a one-line summary of a finished trial: green if the
// destination was reached, red otherwise
func (p *Printer) Trial(r experiment.Result) error {
	outcome := p.au.Green("reached destination")
	if !r.Success() {
		outcome = p.au.Red(fmt.Sprintf("failed (%v)", r.End))
	}

	_, err := fmt.Fprintf(p.w, "Trial %3d: %v in %d steps, deadline %d, "+
		"return %v, exploration %.4f\n", r.Trial+1, outcome, r.Steps,
		r.Deadline, p.au.Bold(fmt.Sprintf("%.2f", r.Return)), r.Exploration)
	return err
}

// Totals writes the overall success rate and mean return of an
// experiment, along with the means over the last window trials
func (p *Printer) Totals(returns, successes []float64, window int) error {
	if len(returns) == 0 || len(successes) == 0 {
		_, err := fmt.Fprintln(p.w, p.au.Yellow("No trials finished"))
		return err
	}
	if window < 1 || window > len(returns) {
		window = len(returns)
	}
	if window > len(successes) {
		window = len(successes)
	}

	recentReturns := returns[len(returns)-window:]
	recentSuccesses := successes[len(successes)-window:]

	_, err := fmt.Fprintf(p.w, "%v trials: success rate %v, mean return "+
		"%.2f (last %d: success rate %v, mean return %.2f)\n",
		len(returns),
		p.rate(stat.Mean(successes, nil)), stat.Mean(returns, nil),
		window,
		p.rate(stat.Mean(recentSuccesses, nil)), stat.Mean(recentReturns, nil))
	return err
}

// rate colours a success rate: green above 0.8, yellow above 0.5 and
// red otherwise
func (p *Printer) rate(r float64) aurora.Value {
	s := fmt.Sprintf("%.1f%%", r*100)
	switch {
	case r > 0.8:
		return p.au.Green(s)
	case r > 0.5:
		return p.au.Yellow(s)
	default:
		return p.au.Red(s)
	}
}
