package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samuelfneumann/smartcab/environment/trafficgrid"
	"github.com/samuelfneumann/smartcab/experiment"
	"github.com/samuelfneumann/smartcab/experiment/report"
	"github.com/samuelfneumann/smartcab/experiment/tracker"
	"github.com/samuelfneumann/smartcab/render"
	ts "github.com/samuelfneumann/smartcab/timestep"
	"github.com/samuelfneumann/smartcab/utils/progressbar"
	"k8s.io/klog/v2"
)

func main() {
	var (
		configFile  string
		trials      int
		seed        int64
		delay       float64
		dataDir     string
		chartFile   string
		framesDir   string
		metricsAddr string
		noColour    bool
		progress    bool
	)
	klog.InitFlags(nil)
	flag.StringVar(&configFile, "config", "", "JSON experiment configuration (default built-in)")
	flag.IntVar(&trials, "trials", 0, "Number of trials, overriding the configuration if positive")
	flag.Int64Var(&seed, "seed", -1, "Random seed, overriding the configuration if non-negative")
	flag.Float64Var(&delay, "delay", -1, "Seconds between steps, overriding the configuration if non-negative")
	flag.StringVar(&dataDir, "data", "", "Directory to save tracked data to")
	flag.StringVar(&chartFile, "chart", "", "HTML file to write the learning curve to")
	flag.StringVar(&framesDir, "frames", "", "Directory to save a PNG of every step to")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on, e.g. :9090")
	flag.BoolVar(&noColour, "no-color", false, "Disable coloured output")
	flag.BoolVar(&progress, "progress", false, "Show a progress bar instead of per-trial summaries")
	flag.Parse()
	defer klog.Flush()

	config, err := loadConfig(configFile)
	if err != nil {
		klog.Fatalf("Failed to load configuration: %v", err)
	}
	if trials > 0 {
		config.Trials = trials
	}
	if seed >= 0 {
		config.Seed = uint64(seed)
	}
	if delay >= 0 {
		config.UpdateDelay = delay
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, options{
		dataDir:     dataDir,
		chartFile:   chartFile,
		framesDir:   framesDir,
		metricsAddr: metricsAddr,
		colour:      !noColour,
		progress:    progress,
	}); err != nil {
		if errors.Is(err, context.Canceled) {
			klog.InfoS("Experiment interrupted")
			return
		}
		klog.Fatalf("Experiment failed: %v", err)
	}
}

// options are the output settings of a run
type options struct {
	dataDir     string
	chartFile   string
	framesDir   string
	metricsAddr string
	colour      bool
	progress    bool
}

// loadConfig loads the experiment configuration at path, or returns
// the default configuration if path is empty
func loadConfig(path string) (experiment.Config, error) {
	if path == "" {
		return experiment.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return experiment.Config{}, fmt.Errorf("loadConfig: %w", err)
	}

	var config experiment.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return experiment.Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return config, nil
}

// run runs the experiment described by config
func run(ctx context.Context, config experiment.Config, opt options) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	if opt.metricsAddr != "" {
		server := serveMetrics(opt.metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				klog.ErrorS(err, "Failed to shut down metrics server")
			}
		}()
	}

	var returnFile, lengthFile, successFile string
	if opt.dataDir != "" {
		if err := os.MkdirAll(opt.dataDir, 0o755); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		returnFile = filepath.Join(opt.dataDir, "return.bin")
		lengthFile = filepath.Join(opt.dataDir, "length.bin")
		successFile = filepath.Join(opt.dataDir, "success.bin")
	}
	returns := tracker.NewReturn(returnFile)
	lengths := tracker.NewEpisodeLength(lengthFile)
	successes := tracker.NewSuccess(successFile)

	exp, err := config.CreateExp(reg, returns, lengths, successes)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	klog.InfoS("Starting experiment", "trials", config.Trials,
		"seed", config.Seed, "agent", config.AgentConf.Type,
		"grid", fmt.Sprintf("%v×%v", config.EnvConf.Cols, config.EnvConf.Rows))

	printer := report.NewPrinter(os.Stdout, opt.colour)
	if opt.progress {
		bar := progressbar.NewManualProgressBar(os.Stdout, 50, config.Trials)
		bar.Display()
		defer bar.Close()
		exp.OnTrial(func(experiment.Result) {
			bar.Increment()
			bar.Display()
		})
	} else {
		exp.OnTrial(func(r experiment.Result) {
			if err := printer.Trial(r); err != nil {
				klog.ErrorS(err, "Failed to print trial summary")
			}
		})
	}

	if opt.framesDir != "" {
		world, ok := exp.Environment.(*trafficgrid.World)
		if !ok {
			return fmt.Errorf("run: cannot render environment %T",
				exp.Environment)
		}
		renderer, err := render.New(60)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		frames, err := render.NewFrames(renderer, opt.framesDir)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		exp.OnStep(func(trial int, step ts.TimeStep) error {
			_, err := frames.Save(trial, step.Number, world.Snapshot())
			return err
		})
	}

	runErr := exp.Run(ctx)

	// Save whatever was tracked, even if the run was interrupted
	if err := exp.Save(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if opt.progress {
		fmt.Fprintln(os.Stdout)
	}
	if err := printer.Totals(returns.Data(), successes.Data(), 10); err != nil {
		klog.ErrorS(err, "Failed to print totals")
	}

	if opt.chartFile != "" {
		err := report.WriteChart(opt.chartFile, "Smartcab learning curve",
			report.Series{Name: "return", Data: returns.Data()},
			report.Series{
				Name: "return (moving average)",
				Data: report.MovingAverage(returns.Data(), 10),
			},
			report.Series{Name: "steps", Data: lengths.Data()},
		)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		klog.InfoS("Wrote learning curve", "path", opt.chartFile)
	}

	return runErr
}

// serveMetrics serves the metrics registered with reg on addr
func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		klog.InfoS("Serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			klog.ErrorS(err, "Metrics server failed")
		}
	}()
	return server
}
