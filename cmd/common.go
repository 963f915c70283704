/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/lingoroute/internal/cache"
	"github.com/valpere/lingoroute/internal/config"
	"github.com/valpere/lingoroute/internal/dispatch"
	"github.com/valpere/lingoroute/internal/endpoint"
	"github.com/valpere/lingoroute/internal/store"
)

var (
	cfgFile        string
	dbPath         string
	noCache        bool
	endpointsFlag  string
	attemptTimeout time.Duration
	dispatchDelay  time.Duration
	verbose        bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default lingoroute.yaml in . or ~/.config/lingoroute)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "./data/lingoroute.db", "Database path for the translation cache")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the persistent translation cache")
	rootCmd.PersistentFlags().StringVar(&endpointsFlag, "endpoints", "", "Endpoint URLs, comma/space separated (overrides env and config)")
	rootCmd.PersistentFlags().DurationVar(&attemptTimeout, "timeout", 30*time.Second, "Per-attempt HTTP timeout")
	rootCmd.PersistentFlags().DurationVar(&dispatchDelay, "delay", dispatch.DefaultDelay, "Pause between consecutive remote dispatches")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// session bundles the process-wide dispatcher and its collaborators,
// assembled from flags, environment and config file.
type session struct {
	registry   *endpoint.Registry
	cache      *cache.Cache
	dispatcher *dispatch.Dispatcher
	store      *store.Store
	config     *viper.Viper
	logger     *slog.Logger
}

// newSession wires registry, cache, store and dispatcher together.
// Endpoint precedence: --endpoints flag, then the config file's endpoints
// list, then LINGOROUTE_ENDPOINTS; the env list always remains the static
// default the registry falls back to when an override is cleared.
func newSession() (*session, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := endpoint.NewRegistry(config.DefaultEndpoints())

	v, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if list := config.Endpoints(v); len(list) > 0 {
		reg.Replace(list)
	}
	if endpointsFlag != "" {
		reg.Replace(config.ParseEndpoints(endpointsFlag))
	}

	var db *store.Store
	if !noCache && dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = store.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	var snap cache.Snapshotter
	if db != nil {
		snap = db
	}
	c := cache.New(snap, logger)
	c.Load(context.Background())

	d := dispatch.New(reg, c, dispatch.Options{
		HTTPClient: &http.Client{Timeout: attemptTimeout},
		Logger:     logger,
		Delay:      dispatchDelay,
	})

	return &session{
		registry:   reg,
		cache:      c,
		dispatcher: d,
		store:      db,
		config:     v,
		logger:     logger,
	}, nil
}

func (s *session) Close() {
	s.dispatcher.Close()
	if s.store != nil {
		s.store.Close()
	}
}
