package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/types"
)

// seedBeach is one entry of a beach seed file.
type seedBeach struct {
	ID           int64   `yaml:"id"`
	Name         string  `yaml:"name"`
	Municipality string  `yaml:"municipality"`
	Lat          float64 `yaml:"lat"`
	Lng          float64 `yaml:"lng"`
	Description  string  `yaml:"description"`
}

// ParseSeed decodes a list of beaches. JSON input is accepted as YAML.
func ParseSeed(data []byte) ([]types.WorkItem, error) {
	var entries []seedBeach
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse beach list: %w", err)
	}
	items := make([]types.WorkItem, 0, len(entries))
	seen := make(map[int64]bool, len(entries))
	for i, e := range entries {
		if e.ID <= 0 {
			return nil, fmt.Errorf("entry %d: id must be positive", i)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("beach %d: name is required", e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("beach %d: duplicate id", e.ID)
		}
		seen[e.ID] = true
		items = append(items, types.WorkItem{
			ID:           e.ID,
			Name:         e.Name,
			Municipality: e.Municipality,
			Lat:          e.Lat,
			Lng:          e.Lng,
			Description:  e.Description,
		})
	}
	return items, nil
}

// ImportFile upserts every beach in a seed file. The file is fully parsed
// before anything is written.
// It returns the number of beaches written.
func (d *DB) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	items, err := ParseSeed(data)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if err := d.InsertBeach(ctx, item); err != nil {
			return 0, fmt.Errorf("failed to import beach %d: %w", item.ID, err)
		}
	}
	d.logger.Info("imported beaches", "path", path, "count", len(items))
	return len(items), nil
}
