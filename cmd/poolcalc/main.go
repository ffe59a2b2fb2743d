// Command poolcalc calculates pipetting volumes for pooling sequencing libraries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/poolcalc/internal/adapters/driven/config/file"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/export"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/prepoolfile"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/samplesheet"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/watch"
	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
	"github.com/custodia-labs/poolcalc/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Configure(&cli.Config{
		PoolingService:  services.NewPoolingService(),
		SettingsService: services.NewSettingsService(configStore()),
		SheetReader:     samplesheet.NewReader(),
		PrePoolSource:   prepoolfile.NewSource(),
		TableWriter:     export.NewCSVWriter(),
		FileWatcher:     watch.New(0),
		Version:         version,
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// configStore opens the TOML settings file, falling back to built-in
// defaults held in memory when the config directory is unusable.
func configStore() driven.ConfigStore {
	dir, err := file.DefaultConfigDir()
	if err == nil {
		var store *file.ConfigStore
		if store, err = file.NewConfigStore(dir); err == nil {
			return store
		}
	}
	fmt.Fprintf(os.Stderr, "Warning: settings unavailable, using defaults: %v\n", err)
	return memory.NewConfigStore()
}
