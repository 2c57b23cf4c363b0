// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command bascat turns raw BACnet point descriptors into a normalized,
// tagged catalog and maps discovered equipment into a commissioning
// database.
//
// Usage:
//
//	bascat normalize --input points.json --equipment-type VAV_CONTROLLER
//	bascat signature --input points.json
//	bascat match --template template.json --points points.json
//	bascat automap --sources bacnet.json --targets cxalloy.json
//	bascat apply --template template.json --points observed.json --equipment VAV-101
//	bascat effectiveness --template template.json --applications apps.json
//	bascat review --input points.json --output reviewed.json
//
// Output is a human-oriented table on a terminal and one indented JSON
// document when piped. --json forces JSON either way.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cxalloy/bascat/services/catalog/catalogcache"
	"github.com/cxalloy/bascat/services/catalog/engine"
	"github.com/cxalloy/bascat/services/catalog/storage"
	"github.com/cxalloy/bascat/services/catalog/storage/memstore"
	"github.com/cxalloy/bascat/services/catalog/storage/mongostore"
)

// Persistent flag values shared by every subcommand.
var (
	flagJSON     bool
	flagTrace    bool
	flagCacheDir string
	flagDictDir  string
	flagMongoURI string
	flagMongoDB  string
)

// telemetryShutdown is installed by the root PersistentPreRunE once flags
// are parsed, and drained after Execute returns.
var telemetryShutdown = func(context.Context) error { return nil }

var rootCmd = &cobra.Command{
	Use:          "bascat",
	Short:        "BACnet point catalog: normalize, sign, match, and map building-automation points",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		shutdown, err := setupTelemetry(cmd.Context(), flagTrace)
		if err != nil {
			return fmt.Errorf("telemetry init: %w", err)
		}
		telemetryShutdown = shutdown
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "force JSON output even on a terminal")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "emit OpenTelemetry spans and metrics to stdout on exit")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "BadgerDB directory for the signature cache (disabled when empty)")
	rootCmd.PersistentFlags().StringVar(&flagDictDir, "dict-dir", "", "directory of dictionary override YAML files, hot-reloaded")
	rootCmd.PersistentFlags().StringVar(&flagMongoURI, "mongo-uri", "", "MongoDB connection string for templates/applications/mappings (in-memory store when empty)")
	rootCmd.PersistentFlags().StringVar(&flagMongoDB, "mongo-db", "bascat", "MongoDB database name")

	rootCmd.AddCommand(
		newNormalizeCmd(),
		newSignatureCmd(),
		newMatchCmd(),
		newAutomapCmd(),
		newApplyCmd(),
		newEffectivenessCmd(),
		newReviewCmd(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	execErr := rootCmd.ExecuteContext(context.Background())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telemetryShutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown", slog.Any("error", err))
	}
	if execErr != nil {
		os.Exit(1)
	}
}

// setupTelemetry installs stdout trace/metric exporters plus the
// Prometheus bridge when enabled. Disabled, it installs nothing and the
// engine's spans go to the default no-op provider.
func setupTelemetry(_ context.Context, enabled bool) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	traceExp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExp))
	otel.SetTracerProvider(tp)

	metricExp, err := stdoutmetric.New()
	if err != nil {
		return nil, err
	}
	promExp, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(time.Minute))),
		sdkmetric.WithReader(promExp),
	)
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
		return mp.Shutdown(ctx)
	}, nil
}

// newEngine builds the engine for one subcommand invocation, honoring the
// cache and dictionary override flags. The returned cleanup closes the
// signature cache DB.
func newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	var sigCache *catalogcache.Store
	if flagCacheDir != "" {
		var err error
		sigCache, err = catalogcache.Open(flagCacheDir, 0, slog.Default())
		if err != nil {
			return nil, nil, fmt.Errorf("open signature cache: %w", err)
		}
	}

	e := engine.New(engine.Options{SignatureCache: sigCache})

	if flagDictDir != "" {
		if err := e.Dictionaries().Watch(ctx, flagDictDir, slog.Default()); err != nil {
			sigCache.Close()
			return nil, nil, fmt.Errorf("watch dictionary overrides: %w", err)
		}
	}

	cleanup := func() {
		if err := sigCache.Close(); err != nil {
			slog.Warn("close signature cache", slog.Any("error", err))
		}
	}
	return e, cleanup, nil
}

// newRepository selects the MongoDB adapter when --mongo-uri is set, else
// the in-memory reference store (useful for single-shot pipelines where
// persistence is handled by redirecting JSON output).
func newRepository(ctx context.Context) (storage.Repository, func(), error) {
	if flagMongoURI == "" {
		return memstore.New(), func() {}, nil
	}

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(flagMongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			slog.Warn("mongodb disconnect", slog.Any("error", err))
		}
	}
	return mongostore.New(client, flagMongoDB), cleanup, nil
}
