package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/subtitle"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

// Fetch runs fetch.command with "{id}" and "{out}" expanded. The command
// runs inside the fetch directory, sees fetch.env on top of the process
// environment, and must write the subtitle JSON to {out} within fetch.timeout.
func (p *implProcessor) Fetch(ctx context.Context, input string) (string, error) {
	if p.cfg.Fetch.Command == "" {
		return "", fmt.Errorf("fetch.command is not configured")
	}
	videoID, err := subtitle.ParseVideoID(input)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(p.cfg.Paths.Output, "fetched")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create fetch dir: %w", err)
	}
	outPath, err := filepath.Abs(filepath.Join(dir, videoID+".json"))
	if err != nil {
		return "", fmt.Errorf("resolve fetch path: %w", err)
	}
	partPath := outPath + ".part"

	r := strings.NewReplacer("{id}", videoID, "{out}", partPath)
	args := make([]string, len(p.cfg.Fetch.Args))
	for i, a := range p.cfg.Fetch.Args {
		args[i] = r.Replace(a)
	}

	p.logger.Info(ctx, "Fetching subtitle for %s: %s %s", videoID, p.cfg.Fetch.Command, strings.Join(args, " "))
	if p.cfg.Fetch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Fetch.Timeout)
		defer cancel()
	}
	cmd := executor.Command{Name: p.cfg.Fetch.Command, Args: args, Dir: dir}
	for _, k := range sortedKeys(p.cfg.Fetch.Env) {
		cmd.Env = append(cmd.Env, k+"="+p.cfg.Fetch.Env[k])
	}
	if _, err := p.executor.Run(ctx, cmd); err != nil {
		p.cleanupTempFile(ctx, partPath)
		return "", fmt.Errorf("fetch subtitle: %w", err)
	}
	if _, err := os.Stat(partPath); err != nil {
		return "", fmt.Errorf("fetch subtitle: command wrote no file: %w", err)
	}
	if err := os.Rename(partPath, outPath); err != nil {
		return "", fmt.Errorf("move fetched subtitle: %w", err)
	}
	return outPath, nil
}
