package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
	"github.com/nguyentantai21042004/dialogue-flow/internal/subtitle"
)

// Artifact names for the Word exports and the manifest itself.
const (
	ArtifactLessonPlanDocx      = "lesson_plan_docx"
	ArtifactObservationNoteDocx = "observation_note_docx"
	ArtifactDialogueDocx        = "dialogue_docx"
	ArtifactManifest            = "manifest"
)

// writeArtifacts writes every text output into <output>/<video id>/ and
// records the paths in the manifest.
func (p *implProcessor) writeArtifacts(ctx context.Context, res *pipeline.Result) error {
	id := subtitle.SafeName(res.Manifest.VideoID)
	outDir := filepath.Join(p.cfg.Paths.Output, id)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	name := func(artifact, ext string) string {
		return filepath.Join(outDir, id+"_"+artifact+ext)
	}

	for _, artifact := range res.Order {
		path := name(artifact, ".txt")
		if err := os.WriteFile(path, []byte(res.Outputs[artifact]), 0644); err != nil {
			return fmt.Errorf("write %s: %w", artifact, err)
		}
		res.Manifest.Artifacts[artifact] = path
	}

	if p.cfg.Output.Docx {
		p.writeDocx(ctx, res, name)
	}

	path := name(ArtifactManifest, ".json")
	res.Manifest.Artifacts[ArtifactManifest] = path
	data, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
