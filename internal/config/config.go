package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Segmenter   SegmenterConfig   `yaml:"segmenter"`
	Enhance     EnhanceConfig     `yaml:"enhance"`
	Document    DocumentConfig    `yaml:"document"`
	Output      OutputConfig      `yaml:"output"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Store       StoreConfig       `yaml:"store"`
	Fetch       FetchConfig       `yaml:"fetch"`
}

// SegmenterConfig tunes speaker attribution. Zero values keep the defaults;
// a non-empty marker list replaces the default list.
type SegmenterConfig struct {
	GapThresholdMS       int64    `yaml:"gap_threshold_ms" validate:"gte=0"`
	ShortUtteranceTokens int      `yaml:"short_utterance_tokens" validate:"gte=0"`
	LongUtteranceTokens  int      `yaml:"long_utterance_tokens" validate:"gte=0"`
	MinDistinctRatio     float64  `yaml:"min_distinct_ratio" validate:"gte=0,lte=1"`
	BurstWindowMS        int64    `yaml:"burst_window_ms" validate:"gte=0"`
	MinBurstCues         int      `yaml:"min_burst_cues" validate:"gte=0"`
	MinChoralCues        int      `yaml:"min_choral_cues" validate:"gte=0"`
	AddressMarkers       []string `yaml:"address_markers"`
	InstructionMarkers   []string `yaml:"instruction_markers"`
	ResponseMarkers      []string `yaml:"response_markers"`
	QuestionParticles    []string `yaml:"question_particles"`
}

type CorrectionConfig struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to"`
}

type EnhanceConfig struct {
	Fillers      []string           `yaml:"fillers"`
	QuestionCues []string           `yaml:"question_cues"`
	Corrections  []CorrectionConfig `yaml:"corrections" validate:"dive"`
}

type StageConfig struct {
	Name      string   `yaml:"name" validate:"required"`
	Keywords  []string `yaml:"keywords"`
	Weight    float64  `yaml:"weight" validate:"gte=0"`
	Technique string   `yaml:"technique"`
	Takeaway  string   `yaml:"takeaway"`
}

type DocumentConfig struct {
	MinTurns     int           `yaml:"min_turns" validate:"gte=0"`
	ExcerptRunes int           `yaml:"excerpt_runes" validate:"gte=0"`
	Stages       []StageConfig `yaml:"stages" validate:"dive"`
}

type OutputConfig struct {
	AnnotateTime bool              `yaml:"annotate_time"`
	Docx         bool              `yaml:"docx"`
	Extras       []string          `yaml:"extras" validate:"dive,oneof=lesson-plan observation-note"`
	SpeakerNames map[string]string `yaml:"speaker_names"`
}

type PathsConfig struct {
	Input    string `yaml:"input" validate:"required"`
	Output   string `yaml:"output" validate:"required"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" validate:"gte=1"`
}

type GeminiConfig struct {
	Enabled bool     `yaml:"enabled"`
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FetchConfig names the external command that downloads a subtitle file.
// "{id}" and "{out}" in Args expand to the video id and the target path.
type FetchConfig struct {
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"`
	Env     map[string]string `yaml:"env"`
	Timeout time.Duration     `yaml:"timeout"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate fills defaults and checks field constraints.
func (c *Config) Validate() error {
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/dialogue.db"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)

	if err := validate.Struct(c); err != nil {
		return validationError(err)
	}
	if c.Gemini.Enabled && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required when gemini.enabled is set (or set GEMINI_API_KEYS)")
	}
	return nil
}

// validationError reports the first failed field by its yaml path.
func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	e := errs[0]
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s] (got: %v)", field, e.Param(), e.Value())
	default:
		return fmt.Errorf("%s failed %s=%s (got: %v)", field, e.Tag(), e.Param(), e.Value())
	}
}
