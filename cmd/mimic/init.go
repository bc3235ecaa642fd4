package main

import (
	"fmt"

	"github.com/gwillem/mimic/pkg/config"
)

type InitCommand struct {
	Dir   string `short:"d" long:"dir" description:"Directory of snapshot files"`
	Force bool   `short:"f" long:"force" description:"Overwrite an existing configuration file"`
}

func (c *InitCommand) Execute(args []string) error {
	if configExists() && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.Config)
	}

	cfg := config.Default()
	cfg.Dir = c.Dir
	if err := saveConfigFile(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println(successStyle.Render("Configuration written to " + opts.Config))
	if cfg.Dir == "" {
		fmt.Println(dimStyle.Render("Set \"dir\" to your recording before running replay."))
	}
	return nil
}
