// Package config loads service configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

// Limits are decimal strings, all empty means unrestricted.
type Limits struct {
	Min  string `yaml:"min"`
	Max  string `yaml:"max"`
	Step string `yaml:"step"`
}

type Symbol struct {
	Name  string `yaml:"name"`
	Price Limits `yaml:"price"`
	Lot   Limits `yaml:"lot"`
}

type Config struct {
	Engine struct {
		Multithread  bool     `yaml:"multithread"`
		DefaultDepth int      `yaml:"default_depth"`
		Symbols      []Symbol `yaml:"symbols"`
	} `yaml:"engine"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"journal"`
	Feed struct {
		Enabled bool     `yaml:"enabled"`
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"feed"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
	// Static reference prices by symbol as decimal strings
	Prices map[string]string `yaml:"prices"`
}

// Default returns configuration used when no file is given.
func Default() Config {
	var c Config
	c.Engine.Multithread = false
	c.Engine.DefaultDepth = 10
	c.Engine.Symbols = []Symbol{{Name: "AAPL"}}
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Journal.Enabled = false
	c.Journal.Dir = "data/journal"
	c.Feed.Enabled = false
	c.Feed.Brokers = []string{"localhost:9092"}
	c.Feed.Topic = "orderbook"
	c.Metrics.Enabled = false
	c.Metrics.Addr = ":9100"
	return c
}

// Load reads the YAML file over the defaults, applies environment overrides and validates the result.
// Empty path loads defaults only.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("ORDERBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ORDERBOOK_JOURNAL_DIR"); v != "" {
		c.Journal.Enabled = true
		c.Journal.Dir = v
	}
	if v := os.Getenv("ORDERBOOK_FEED_BROKERS"); v != "" {
		c.Feed.Enabled = true
		c.Feed.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("ORDERBOOK_METRICS_ADDR"); v != "" {
		c.Metrics.Enabled = true
		c.Metrics.Addr = v
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if len(c.Engine.Symbols) == 0 {
		return errors.New("at least one symbol is required")
	}
	seen := make(map[string]bool, len(c.Engine.Symbols))
	for _, s := range c.Engine.Symbols {
		if seen[s.Name] {
			return fmt.Errorf("symbol %q is duplicated", s.Name)
		}
		seen[s.Name] = true
		if _, err := s.Symbol(); err != nil {
			return err
		}
	}
	if _, err := c.StaticPrices(); err != nil {
		return err
	}
	if c.Journal.Enabled && c.Journal.Dir == "" {
		return errors.New("journal dir is required")
	}
	if c.Feed.Enabled && (len(c.Feed.Brokers) == 0 || c.Feed.Topic == "") {
		return errors.New("feed brokers and topic are required")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics addr is required")
	}
	return nil
}

// Symbols converts configured symbols.
func (c Config) Symbols() ([]matching.Symbol, error) {
	symbols := make([]matching.Symbol, 0, len(c.Engine.Symbols))
	for _, s := range c.Engine.Symbols {
		symbol, err := s.Symbol()
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

// StaticPrices converts configured reference prices.
func (c Config) StaticPrices() (map[string]matching.Uint, error) {
	prices := make(map[string]matching.Uint, len(c.Prices))
	for symbol, v := range c.Prices {
		price, err := matching.NewUintFromFloatString(v)
		if err != nil {
			return nil, fmt.Errorf("price of %s: %w", symbol, err)
		}
		prices[symbol] = price
	}
	return prices, nil
}

// Symbol converts the configured symbol and checks its limits.
func (s Symbol) Symbol() (matching.Symbol, error) {
	price, err := s.Price.limits()
	if err != nil {
		return matching.Symbol{}, fmt.Errorf("price limits of %s: %w", s.Name, err)
	}
	lot, err := s.Lot.limits()
	if err != nil {
		return matching.Symbol{}, fmt.Errorf("lot limits of %s: %w", s.Name, err)
	}
	symbol := matching.NewSymbolWithLimits(s.Name, price, lot)
	if !symbol.Valid() {
		return matching.Symbol{}, fmt.Errorf("%w: %q", matching.ErrInvalidSymbol, s.Name)
	}
	return symbol, nil
}

func (l Limits) limits() (matching.Limits, error) {
	if l.Min == "" && l.Max == "" && l.Step == "" {
		return matching.Limits{}, nil
	}
	var (
		res matching.Limits
		err error
	)
	if res.Min, err = matching.NewUintFromFloatString(l.Min); err != nil {
		return res, fmt.Errorf("min: %w", err)
	}
	if res.Max, err = matching.NewUintFromFloatString(l.Max); err != nil {
		return res, fmt.Errorf("max: %w", err)
	}
	if res.Step, err = matching.NewUintFromFloatString(l.Step); err != nil {
		return res, fmt.Errorf("step: %w", err)
	}
	return res, nil
}
