// Package catalog loads the puzzle catalog into the record store at startup.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vytor/regexplorer/internal/logger"
	"github.com/vytor/regexplorer/internal/models"
	"github.com/vytor/regexplorer/internal/repository"
)

//go:embed puzzles.yaml
var embedded []byte

// FormatVersion is the only catalog file version understood.
const FormatVersion = 1

// File is the on-disk catalog layout.
type File struct {
	Version int                           `yaml:"version"`
	Tiers   map[models.Difficulty][]Entry `yaml:"tiers"`
}

// Entry is one puzzle definition inside a tier.
type Entry struct {
	Order        int    `yaml:"order"`
	Instructions string `yaml:"instructions"`
	Text         string `yaml:"text"`
	Solution     string `yaml:"solution"`
	Hint         string `yaml:"hint"`
}

// Read returns the catalog at path, or the embedded catalog when path is empty.
func Read(path string) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes and checks a catalog. Puzzles come back tier by tier
// (easy, medium, hard), each tier in file order.
func Parse(data []byte) ([]models.NewPuzzle, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported catalog version %d", f.Version)
	}
	for tier := range f.Tiers {
		if !tier.Valid() {
			return nil, fmt.Errorf("unknown difficulty tier %q", tier)
		}
	}

	var puzzles []models.NewPuzzle
	for _, tier := range models.Difficulties {
		for i, e := range f.Tiers[tier] {
			if err := e.validate(); err != nil {
				return nil, fmt.Errorf("%s puzzle #%d: %w", tier, i+1, err)
			}
			puzzles = append(puzzles, models.NewPuzzle{
				Difficulty:   tier,
				Instructions: e.Instructions,
				Text:         e.Text,
				Solution:     e.Solution,
				Hint:         e.Hint,
				Order:        e.Order,
			})
		}
	}
	return puzzles, nil
}

func (e Entry) validate() error {
	var missing []string
	if strings.TrimSpace(e.Instructions) == "" {
		missing = append(missing, "instructions")
	}
	if e.Text == "" {
		missing = append(missing, "text")
	}
	if strings.TrimSpace(e.Solution) == "" {
		missing = append(missing, "solution")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Seed fills an empty puzzle store from the catalog at path. A missing or
// corrupt catalog is logged and leaves the store empty; it never fails startup.
// A store that already holds puzzles is left alone.
func Seed(ctx context.Context, repo repository.PuzzleRepository, path string) int {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	existing, err := repo.Count(ctx)
	if err != nil {
		log.Error("failed to count puzzles, skipping catalog load: %v", err)
		return 0
	}
	if existing > 0 {
		log.Info("store already holds %d puzzles, skipping catalog load", existing)
		return 0
	}

	data, err := Read(path)
	if err != nil {
		log.Error("catalog unavailable, serving an empty catalog: %v", err)
		return 0
	}
	puzzles, err := Parse(data)
	if err != nil {
		log.Error("catalog is corrupt, serving an empty catalog: %v", err)
		return 0
	}

	loaded := 0
	for _, p := range puzzles {
		if _, err := repo.Create(ctx, p); err != nil {
			log.Error("failed to store %s puzzle order=%d: %v", p.Difficulty, p.Order, err)
			continue
		}
		loaded++
	}
	log.Info("catalog loaded: %d puzzles", loaded)
	return loaded
}
