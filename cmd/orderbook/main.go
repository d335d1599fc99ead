package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptonstudio/crypton-orderbook/config"
	"github.com/cryptonstudio/crypton-orderbook/matching"
	"github.com/cryptonstudio/crypton-orderbook/providers/journal"
	"github.com/cryptonstudio/crypton-orderbook/providers/metrics"
	"github.com/cryptonstudio/crypton-orderbook/providers/pricesource"
	"github.com/cryptonstudio/crypton-orderbook/providers/tradefeed"
)

func main() {
	var configPath, scriptPath string
	var stats bool
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.StringVar(&scriptPath, "script", "", "Order script to replay, stdin when empty")
	flag.BoolVar(&stats, "stats", false, "Print handler statistics on exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stderr)

	if err := run(cfg, logger, scriptPath, stats); err != nil {
		logger.Fatal().Err(err).Msg("order book service failed")
	}
}

func run(cfg config.Config, logger zerolog.Logger, scriptPath string, stats bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	symbols, err := cfg.Symbols()
	if err != nil {
		return err
	}
	staticPrices, err := cfg.StaticPrices()
	if err != nil {
		return err
	}

	// Collaborators
	matcher := &Matcher{}
	lastTrade := pricesource.NewLastTrade()
	engineMetrics := metrics.New()
	handlers := []matching.Handler{matcher, engineMetrics, lastTrade}
	collectors := engineMetrics.Collectors()

	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Dir, journal.Options{
			OnError: func(err error) {
				logger.Error().Err(err).Msg("journal write failed")
			},
		})
		if err != nil {
			return err
		}
		defer j.Close()
		handlers = append(handlers, j)
		logger.Info().Str("dir", cfg.Journal.Dir).Msg("journal opened")
	}

	if cfg.Feed.Enabled {
		feed := tradefeed.New(tradefeed.NewWriter(cfg.Feed.Brokers, cfg.Feed.Topic), logger)
		defer feed.Close()
		handlers = append(handlers, feed)
		collectors = append(collectors, feed.Collectors()...)
		logger.Info().Strs("brokers", cfg.Feed.Brokers).Str("topic", cfg.Feed.Topic).Msg("trade feed enabled")
	}

	if cfg.Metrics.Enabled {
		reg, err := metrics.NewRegistry(collectors...)
		if err != nil {
			return err
		}
		server := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Str("addr", cfg.Metrics.Addr).Msg("metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx) //nolint:errcheck
		}()
		logger.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics server started")
	}

	prices := pricesource.Chain{pricesource.NewStatic(staticPrices), lastTrade}

	// Create matching engine
	engine := matching.NewEngine(matching.Handlers(handlers...), logger, cfg.Engine.Multithread)
	for _, symbol := range symbols {
		if _, err := engine.AddOrderBook(symbol); err != nil {
			return err
		}
	}

	var in io.Reader = os.Stdin
	if scriptPath != "" {
		file, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	script := &Script{
		engine: engine,
		prices: prices,
		depth:  cfg.Engine.DefaultDepth,
		out:    os.Stdout,
	}

	timeStart := time.Now()
	failed, err := script.Run(ctx, in)
	engine.Stop(false)
	timeElapsed := time.Since(timeStart)

	logger.Info().Int("failed", failed).Dur("elapsed", timeElapsed).Msg("script finished")
	if stats {
		matcher.PrintStatistics(os.Stderr, timeElapsed)
	}
	return err
}
