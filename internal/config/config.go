package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string        `yaml:"environment"`
	HTTP        HTTPConfig    `yaml:"http"`
	Storage     StorageConfig `yaml:"storage"`
	NATS        NATSConfig    `yaml:"nats"`
	Game        GameConfig    `yaml:"game"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type StorageConfig struct {
	OutputRoot      string       `yaml:"output_root"`      // generated layouts
	SimulationsRoot string       `yaml:"simulations_root"` // simulation results
	Badger          BadgerConfig `yaml:"badger"`
}

type BadgerConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`     // empty disables live event emission
	Subject string `yaml:"subject"`
}

type GameConfig struct {
	NumbersPerCard int `yaml:"numbers_per_card"`
	MaxNumber      int `yaml:"max_number"`
	CardsPerSheet  int `yaml:"cards_per_sheet"`
	SheetsPerRow   int `yaml:"sheets_per_row"`
	RankingSize    int `yaml:"ranking_size"`
}

// Default returns the config used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Storage.OutputRoot == "" {
		c.Storage.OutputRoot = "bingos"
	}
	if c.Storage.SimulationsRoot == "" {
		c.Storage.SimulationsRoot = "simulations"
	}
	if c.Storage.Badger.Directory == "" {
		c.Storage.Badger.Directory = "data/index"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "bingo.live.events"
	}
	if c.Game.NumbersPerCard == 0 {
		c.Game.NumbersPerCard = 10
	}
	if c.Game.MaxNumber == 0 {
		c.Game.MaxNumber = 60
	}
	if c.Game.CardsPerSheet == 0 {
		c.Game.CardsPerSheet = 3
	}
	if c.Game.SheetsPerRow == 0 {
		c.Game.SheetsPerRow = 2
	}
	if c.Game.RankingSize == 0 {
		c.Game.RankingSize = 20
	}
}
