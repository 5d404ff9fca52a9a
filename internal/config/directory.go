package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jobboard-engine/internal/domain"
)

// CompaniesFile is the on-disk shape of the company directory.
type CompaniesFile struct {
	Companies []domain.Company `yaml:"companies"`
}

// FileDirectory reads the company directory from a YAML file on every call,
// so edits are picked up by the next run without a restart.
type FileDirectory struct {
	Path string
}

func (d FileDirectory) Companies(ctx context.Context) ([]domain.Company, error) {
	b, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read company directory: %w", err)
	}
	var cf CompaniesFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return nil, fmt.Errorf("parse company directory %s: %w", d.Path, err)
	}
	return cf.Companies, nil
}

// StaticDirectory serves a fixed list; used by tests and one-off runs.
type StaticDirectory []domain.Company

func (d StaticDirectory) Companies(ctx context.Context) ([]domain.Company, error) {
	return d, nil
}
