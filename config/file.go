// Package config — YAML config file layer.
// A coursepipe.yaml file supplies persistent defaults; CLI flags and
// programmatic settings override it.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/render"
)

// DefaultConfigFile is the config filename looked up in the working directory.
const DefaultConfigFile = "coursepipe.yaml"

// FileConfig mirrors the YAML config file schema. Booleans are pointers so
// that an absent key is distinguishable from an explicit false.
type FileConfig struct {
	Host          string            `yaml:"host"`
	OutputDir     string            `yaml:"output_dir"`
	Formats       []string          `yaml:"formats"`
	Callouts      *bool             `yaml:"callouts"`
	CalloutTokens map[string]string `yaml:"callout_tokens"`
	EmbedImages   *bool             `yaml:"embed_images"`
	PipeTables    *bool             `yaml:"pipe_tables"`
	Frontmatter   *bool             `yaml:"frontmatter"`
	Delay         string            `yaml:"delay"`
	Threshold     int               `yaml:"failure_threshold"`
}

// LoadFile reads a YAML config file. A missing file is not an error and
// returns nil.
func LoadFile(path string, logger *slog.Logger) (*FileConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("no config file", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	logger.Debug("loaded config file", "path", path)
	return &fc, nil
}

// Apply merges the file values into a RunConfig. A file value is skipped when
// its key appears in explicit, which names the settings the caller set
// directly (for the CLI: the flags present on the command line, under their
// flag names). Everything else present in the file wins over the RunConfig's
// current value, so flag defaults do not shadow the file.
func (fc *FileConfig) Apply(rc *RunConfig, explicit map[string]bool) error {
	if fc == nil {
		return nil
	}
	if fc.Host != "" && !explicit["host"] {
		rc.AllowedHost = fc.Host
	}
	if fc.OutputDir != "" && !explicit["output_dir"] {
		rc.OutputDir = fc.OutputDir
	}
	if len(fc.Formats) > 0 && !explicit["formats"] {
		formats := make([]render.Format, 0, len(fc.Formats))
		for _, name := range fc.Formats {
			format, err := render.ParseFormat(name)
			if err != nil {
				return &core.ValidationError{Field: "formats", Reason: err.Error()}
			}
			formats = append(formats, format)
		}
		rc.Render.Formats = formats
	}
	if fc.Callouts != nil && !explicit["callouts"] {
		rc.Render.Callouts = *fc.Callouts
	}
	if fc.PipeTables != nil && !explicit["pipe-tables"] {
		rc.Render.PipeTables = *fc.PipeTables
	}
	if fc.EmbedImages != nil && !explicit["embed-images"] {
		rc.Render.EmbedImages = *fc.EmbedImages
	}
	if fc.Frontmatter != nil && !explicit["frontmatter"] {
		rc.Render.Frontmatter = *fc.Frontmatter
	}
	if len(fc.CalloutTokens) > 0 {
		tokens := render.DefaultCalloutTokens()
		for kind, token := range fc.CalloutTokens {
			tokens[core.SectionKind(kind)] = token
		}
		rc.Render.CalloutTokens = tokens
	}
	if fc.Delay != "" && !explicit["delay"] {
		d, err := time.ParseDuration(fc.Delay)
		if err != nil {
			return &core.ValidationError{Field: "delay", Reason: err.Error()}
		}
		rc.RequestDelay = d
	}
	if fc.Threshold > 0 && !explicit["failure_threshold"] {
		rc.FailureThreshold = fc.Threshold
	}
	return nil
}
