package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
	"github.com/nguyentantai21042004/dialogue-flow/internal/subtitle"
)

// Process runs ProcessFile and then archives the input file.
func (p *implProcessor) Process(ctx context.Context, subtitlePath string) error {
	manifest, err := p.ProcessFile(ctx, subtitlePath)
	if err != nil {
		if mvErr := p.moveToArchived(ctx, subtitlePath, "failed"); mvErr != nil {
			p.logger.Warn(ctx, "Failed to move input to archived folder: %v", mvErr)
		}
		return err
	}

	if err := p.moveToArchived(ctx, subtitlePath, subtitle.SafeName(manifest.VideoID)); err != nil {
		p.logger.Warn(ctx, "Failed to move input to archived folder: %v", err)
	}
	return nil
}

// ProcessFile orchestrates decoding, the dialogue pipeline and artifact output.
func (p *implProcessor) ProcessFile(ctx context.Context, subtitlePath string) (pipeline.Manifest, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting dialogue processing: %s", subtitlePath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Decode subtitle file
	track, err := subtitle.ReadFile(subtitlePath)
	if err != nil {
		return pipeline.Manifest{}, fmt.Errorf("read subtitle: %w", err)
	}
	p.logger.Info(ctx, "Video %s (%s): %d subtitle entries", track.VideoID, track.Title, len(track.Entries))

	// Step 2: Run the pipeline
	pl := pipeline.New(p.cfg.PipelineOptions(), p.refiner)
	res, err := pl.Run(ctx, pipeline.Input{VideoID: track.VideoID, Title: track.Title, Entries: track.Entries})
	for _, w := range res.Manifest.Warnings {
		p.logger.Warn(ctx, "%s", w)
	}
	if err != nil {
		return res.Manifest, fmt.Errorf("run pipeline: %w", err)
	}
	p.logger.Info(ctx, "Segmented %d cues into %d turns (%d fallbacks)",
		len(res.Cues), len(res.Final().Turns), len(res.Segmentation.Fallbacks))
	for _, fb := range res.Segmentation.Fallbacks {
		p.logger.Debug(ctx, "Speaker fallback: %s", fb)
	}

	// Step 3: Write artifacts
	if err := p.writeArtifacts(ctx, &res); err != nil {
		return res.Manifest, fmt.Errorf("write artifacts: %w", err)
	}

	// Step 4: Archive the run
	if p.archive != nil {
		if err := p.archive.SaveRun(ctx, res, startTime); err != nil {
			p.logger.Warn(ctx, "Failed to archive run %s: %v", res.Manifest.RunID, err)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	for _, name := range sortedKeys(res.Manifest.Artifacts) {
		p.logger.Info(ctx, "Output %s: %s", name, res.Manifest.Artifacts[name])
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return res.Manifest, nil
}
