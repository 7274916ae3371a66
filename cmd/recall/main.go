package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recall-labs/go-recall/src/config"
	"github.com/recall-labs/go-recall/src/memory/source"
	"github.com/recall-labs/go-recall/src/render"
	"github.com/recall-labs/go-recall/src/retrieval"
	"github.com/recall-labs/go-recall/src/server"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "recall",
		Short: "Similarity retrieval over agent memory collections",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./recall.yaml)")

	root.AddCommand(rankCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(renderCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	return log
}

func rankCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rank <query-json> <memory-file> <top-k>",
		Short: "Rank a memory document against a query embedding",
		Long: "Scores every record in the memory document against the query vector\n" +
			"with cosine similarity and prints the top-k as a JSON array. Any\n" +
			"failure prints a single-element [{\"error\": ...}] array instead.",
		Args: cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			runRank(os.Stdout, args[0], args[1], args[2], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json|toon")
	return cmd
}

// runRank mirrors the original script contract: results or the error
// envelope always go to stdout, and the process exits zero either way.
func runRank(w io.Writer, rawQuery, memoryFile, rawTopK, format string) {
	query, err := retrieval.ParseQuery(rawQuery)
	if err != nil {
		_ = retrieval.WriteError(w, err)
		return
	}
	topK, err := retrieval.ParseTopK(rawTopK)
	if err != nil {
		_ = retrieval.WriteError(w, err)
		return
	}
	results, err := retrieval.Retrieve(context.Background(), source.NewFileSource(memoryFile), retrieval.Request{
		Query: query,
		TopK:  topK,
	})
	if err != nil {
		_ = retrieval.WriteError(w, err)
		return
	}
	if strings.EqualFold(format, "toon") {
		out, err := retrieval.EncodeTOON(results)
		if err != nil {
			_ = retrieval.WriteError(w, err)
			return
		}
		fmt.Fprintln(w, out)
		return
	}
	_ = retrieval.WriteResults(w, results)
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the retrieval API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			return server.New(cfg, newLogger(cfg.Log.Level)).Run()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func renderCmd() *cobra.Command {
	var (
		presetName string
		frames     int
	)

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Run the simulated frame-processing worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			preset, err := cfg.Presets().Lookup(presetName)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Log.Level)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			job := render.NewJob(args[0], preset, frames)
			processed, err := render.NewWorker(log).Process(ctx, job)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"job": job.ID, "frames": processed}).Info("render complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&presetName, "preset", "standard", "quality preset")
	cmd.Flags().IntVar(&frames, "frames", 100, "number of frames to simulate")
	return cmd
}
