package forecast

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tripcast-service/internal/domain/entity"
	"tripcast-service/internal/domain/repository"
)

// Forecast sources accepted by Load and by FORECAST_SOURCE
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceMongo    = "mongo"
)

//go:embed forecasts.yaml
var embeddedForecasts []byte

// document is the YAML layout of a forecast file
type document struct {
	Forecasts []entity.ForecastRecord `yaml:"forecasts"`
}

// LoadEmbedded builds the table compiled into the binary
func LoadEmbedded() (*Table, error) {
	return Decode(bytes.NewReader(embeddedForecasts))
}

// LoadFile builds a table from a YAML file with the same layout as the embedded one
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open forecast file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a single YAML forecast document and builds a table from it.
// Input holding more than one document is rejected.
func Decode(r io.Reader) (*Table, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode forecasts: %w", err)
		}
		return NewTable(nil)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("decode forecasts: %w", err)
		}
		return nil, errors.New("decode forecasts: expected a single YAML document")
	}

	return NewTable(doc.Forecasts)
}

// LoadFromRepository reads every stored forecast once and builds a table from them
func LoadFromRepository(ctx context.Context, repo repository.ForecastRepository) (*Table, error) {
	records, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load forecasts: %w", err)
	}
	return NewTable(records)
}

// Load builds the table from the configured source. repo is only used by SourceMongo.
func Load(ctx context.Context, source, path string, repo repository.ForecastRepository) (*Table, error) {
	switch source {
	case SourceEmbedded, "":
		return LoadEmbedded()
	case SourceFile:
		return LoadFile(path)
	case SourceMongo:
		if repo == nil {
			return nil, errors.New("mongo forecast source requires a forecast repository")
		}
		return LoadFromRepository(ctx, repo)
	default:
		return nil, fmt.Errorf("unknown forecast source %q", source)
	}
}
