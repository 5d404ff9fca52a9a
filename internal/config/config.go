package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		IntervalHours   int `yaml:"interval_hours"`
		CompanyDelayMS  int `yaml:"company_delay_ms"`
		PageDelayMS     int `yaml:"page_delay_ms"`
		StaleAfterHours int `yaml:"stale_after_hours"`
	} `yaml:"scrape"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
