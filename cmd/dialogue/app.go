package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
	"github.com/nguyentantai21042004/dialogue-flow/internal/processor"
	"github.com/nguyentantai21042004/dialogue-flow/internal/refiner"
	"github.com/nguyentantai21042004/dialogue-flow/internal/store"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	proc  processor.Processor
	store *store.Store
}

// runOverrides are command-line settings that replace config values.
type runOverrides struct {
	extras string
	docx   bool
	refine bool
}

func loadApp(ctx context.Context, configPath string, o *runOverrides) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if o != nil {
		if o.extras != "" {
			extras, err := pipeline.ParseExtras(o.extras)
			if err != nil {
				return nil, err
			}
			cfg.Output.Extras = nil
			for name := range extras {
				cfg.Output.Extras = append(cfg.Output.Extras, name)
			}
			sort.Strings(cfg.Output.Extras)
		}
		cfg.Output.Docx = cfg.Output.Docx || o.docx
		if o.refine {
			cfg.Gemini.Enabled = true
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("validate config: %w", err)
			}
		}
	}

	log := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	var archive processor.Archive
	if cfg.Store.Enabled {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.store = st
		archive = st
		log.Debug(ctx, "Archiving runs to %s", cfg.Store.Path)
	}

	var ref pipeline.Refiner
	if cfg.Gemini.Enabled {
		ref = refiner.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Output.Names(), log)
		log.Debug(ctx, "Refining dialogue with %s (%d keys)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	}

	a.proc = processor.New(cfg, executor.New(), log, ref, archive)
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

// printResult writes the manifest as a single RESULT_JSON line.
func printResult(w io.Writer, m pipeline.Manifest) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, "RESULT_JSON:"+string(data))
	return err
}

func joinExtras(extras []string) string {
	return strings.Join(extras, ",")
}
