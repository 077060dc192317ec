package main

import (
	"os"

	"github.com/rdo34/notebook/internal/app"
	"github.com/rdo34/notebook/internal/config"
	appLog "github.com/rdo34/notebook/internal/log"
	"github.com/rdo34/notebook/internal/store"
	"github.com/rdo34/notebook/internal/ui"
)

func main() {
	cfg := loadConfig()
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	st, err := store.NewFSStore(cfg.DataDir)
	if err != nil {
		appLog.Error("data dir unusable", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}
	a := app.New(st)

	if cfg.UI == config.UITUI {
		if err := ui.New(a, cfg.DefaultFile).Run(); err != nil {
			appLog.Error("terminal UI failed", err)
			os.Exit(1)
		}
		return
	}
	newMenu(os.Stdin, os.Stdout, a, cfg.DefaultFile).run()
}

// loadConfig returns the user config, or defaults when it cannot be read.
func loadConfig() *config.Config {
	cfg := config.DefaultConfig()
	path, err := config.DefaultPath()
	if err != nil {
		appLog.Error("no config location", err)
	} else if loaded, err := config.Load(path); err != nil {
		appLog.Error("config not loaded, using defaults", err, "path", path)
	} else {
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg
}
