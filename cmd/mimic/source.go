package main

import (
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/gwillem/mimic/pkg/config"
	"github.com/gwillem/mimic/pkg/device"
	"github.com/gwillem/mimic/pkg/mocap"
)

// SourceOptions select the recording to load. They override the config file
// and MIMIC_* environment variables.
type SourceOptions struct {
	Dir            string  `short:"d" long:"dir" description:"Directory of snapshot files"`
	Pattern        string  `long:"pattern" description:"Glob for snapshot file names (default: all .json/.yaml/.yml)"`
	PosSensitivity float64 `long:"pos-sensitivity" description:"Position command scaling"`
	RotSensitivity float64 `long:"rot-sensitivity" description:"Rotation command scaling"`
}

func (o *SourceOptions) settings() (*config.Config, error) {
	cfg := config.Default()
	if configExists() {
		var err error
		cfg, err = loadConfigFile()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.Config, err)
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if o.Dir != "" {
		cfg.Dir = o.Dir
	}
	if o.Pattern != "" {
		cfg.Pattern = o.Pattern
	}
	if o.PosSensitivity != 0 {
		cfg.PosSensitivity = o.PosSensitivity
	}
	if o.RotSensitivity != 0 {
		cfg.RotSensitivity = o.RotSensitivity
	}
	return cfg, nil
}

// validSettings is settings followed by validation.
func (o *SourceOptions) validSettings() (*config.Config, error) {
	cfg, err := o.settings()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func configExists() bool {
	if opts.Config == config.DefaultConfigFile {
		return config.ConfigExists()
	}
	_, err := os.Stat(opts.Config)
	return err == nil
}

func loadConfigFile() (*config.Config, error) {
	if opts.Config == config.DefaultConfigFile {
		return config.LoadConfig()
	}
	return config.LoadConfigFrom(opts.Config)
}

func saveConfigFile(cfg *config.Config) error {
	if opts.Config == config.DefaultConfigFile {
		return cfg.Save()
	}
	return cfg.SaveTo(opts.Config)
}

// loadProgress draws a progress bar on stderr while snapshots load.
type loadProgress struct {
	bar *pb.ProgressBar
}

const progressTemplate = `{{ string . "prefix" }} {{counters . "%s/%s" "%s/?"}} {{bar . }} {{percent . "%.01f%%" "?"}} {{etime . "%s elapsed"}}`

func (p *loadProgress) update(done, total int, path string) {
	if p.bar == nil {
		p.bar = pb.ProgressBarTemplate(progressTemplate).New(total).SetWriter(os.Stderr)
		p.bar.Set("prefix", "Loading")
		p.bar.Start()
	}
	p.bar.Increment()
}

func (p *loadProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

func loadMimic(cfg *config.Config) (*device.Mimic, error) {
	progress := &loadProgress{}
	defer progress.finish()

	return device.NewMimic(cfg.Dir,
		device.WithPattern(cfg.Pattern),
		device.WithPosSensitivity(cfg.PosSensitivity),
		device.WithRotSensitivity(cfg.RotSensitivity),
		device.WithProgress(progress.update),
	)
}

func loadFrames(cfg *config.Config) ([]mocap.Frame, error) {
	progress := &loadProgress{}
	defer progress.finish()

	return mocap.LoadFrames(cfg.Dir, cfg.Pattern, progress.update)
}
