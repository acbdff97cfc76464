package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/beamline/internal/config"
	"github.com/san-kum/beamline/internal/report"
	"github.com/san-kum/beamline/internal/ring"
	"github.com/san-kum/beamline/internal/storage"
)

var (
	dataDir    string
	configFile string
	turns      int
	particles  int
	seed       int64
	workers    int
	exportPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beamline",
		Short: "symplectic particle tracking through accelerator lattices",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".beamline", "data directory")

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "track a beam through the configured ring",
		RunE:  runTrack,
	}
	trackCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	trackCmd.Flags().IntVar(&turns, "turns", 0, "override number of turns")
	trackCmd.Flags().IntVar(&particles, "particles", 0, "override particle count")
	trackCmd.Flags().Int64Var(&seed, "seed", 0, "override beam seed")
	trackCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = serial)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&exportPath, "out", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the tracking kernel on the configured ring",
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = serial)")

	rootCmd.AddCommand(trackCmd, listCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func buildRun(cfg *config.Config) (*ring.Ring, error) {
	elements, err := cfg.BuildElements()
	if err != nil {
		return nil, err
	}
	return ring.New(elements...), nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if turns > 0 {
		cfg.Tracking.Turns = turns
	}
	if particles > 0 {
		cfg.Beam.Particles = particles
	}
	if seed != 0 {
		cfg.Beam.Seed = seed
	}
	if workers > 0 {
		cfg.Tracking.Workers = workers
	}

	rg, err := buildRun(cfg)
	if err != nil {
		return err
	}

	rec := ring.NewRecorder(cfg.Tracking.Monitor)
	rg.AddObserver(rec)

	batch := cfg.BuildBatch()
	start := time.Now()
	result, err := rg.Track(context.Background(), batch, ring.Config{
		Turns:   cfg.Tracking.Turns,
		Workers: cfg.Tracking.Workers,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save("run", cfg.Beam.Seed, result, rec)
	if err != nil {
		return err
	}

	fmt.Println(report.Summary(runID, result))
	fmt.Printf("tracked %d particles x %d turns in %v\n",
		result.Count, result.Turns, elapsed)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ids, err := st.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		meta, err := st.Load(id)
		if err != nil {
			fmt.Printf("%s  (unreadable: %v)\n", id, err)
			continue
		}
		fmt.Printf("%s  turns=%d particles=%d survived=%d\n",
			id, meta.Turns, meta.Particles, meta.Survived)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], exportPath)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rg, err := buildRun(cfg)
	if err != nil {
		return err
	}

	batch := cfg.BuildBatch()
	start := time.Now()
	result, err := rg.Track(context.Background(), batch, ring.Config{
		Turns:   cfg.Tracking.Turns,
		Workers: workers,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := float64(result.Count) * float64(result.Turns)
	fmt.Printf("%d particles x %d turns: %v (%.0f particle-turns/s)\n",
		result.Count, result.Turns, elapsed, total/elapsed.Seconds())
	return nil
}
