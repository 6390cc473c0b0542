package targets

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/plantdb"
	"github.com/haithamsoil/nasgh/internal/repository"
)

// Source tags which resolution tier produced a range record.
type Source string

const (
	SourceStatic    Source = "static"
	SourceCached    Source = "cached"
	SourceGenerated Source = "generated"
)

// Resolution is the outcome of one resolve call.
type Resolution struct {
	PlantKey string             `json:"plantKey"`
	Targets  domain.RangeRecord `json:"targets"`
	Source   Source             `json:"from"`
}

// rangeGenerator is the generation tier; *Generator satisfies it.
type rangeGenerator interface {
	Generate(ctx context.Context, plantName string, stage domain.Stage, snapshot domain.Reading) (domain.RangeRecord, error)
}

// Resolver walks the three tiers in strict order: static table, cache,
// generation. The first tier that answers wins; generation failures
// propagate rather than degrade into empty ranges.
type Resolver struct {
	store  repository.RangeStore
	gen    rangeGenerator
	logger *slog.Logger
}

// NewResolver wires the cache store and generator. A nil logger
// discards log output.
func NewResolver(store repository.RangeStore, gen rangeGenerator, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{store: store, gen: gen, logger: logger}
}

// Resolve returns the target ranges for a free-text plant name and
// growth stage. Cache read failures count as misses; cache write
// failures are logged and the generated record is still returned. A
// cancelled generation never writes to the cache.
func (r *Resolver) Resolve(ctx context.Context, rawPlantName string, stage domain.Stage, snapshot domain.Reading) (*Resolution, error) {
	plantKey, err := plantdb.Normalize(rawPlantName)
	if err != nil {
		return nil, err
	}

	if rec, ok := plantdb.LookupStatic(plantKey, stage); ok {
		return &Resolution{PlantKey: plantKey, Targets: rec, Source: SourceStatic}, nil
	}

	key := domain.TargetKey{PlantKey: plantKey, Stage: stage}
	if rec, err := r.store.Get(ctx, key); err == nil {
		if vErr := rec.Validate(); vErr == nil {
			return &Resolution{PlantKey: plantKey, Targets: rec, Source: SourceCached}, nil
		}
		// A corrupt cache entry is treated as a miss and regenerated.
		r.logger.Warn("discarding invalid cached targets",
			"plant_key", plantKey, "stage", stage)
	} else if !errors.Is(err, repository.ErrNotFound) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("range cache read failed, treating as miss",
			"plant_key", plantKey, "stage", stage, "error", err)
	}

	displayName := strings.TrimSpace(rawPlantName)
	generated, err := r.gen.Generate(ctx, displayName, stage, snapshot)
	if err != nil {
		return nil, err
	}

	// The caller may have given up while the model was answering; do
	// not persist a result nobody waited for.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if putErr := r.store.Put(ctx, key, generated); putErr != nil {
		r.logger.Warn("persisting generated targets failed",
			"plant_key", plantKey, "stage", stage, "error", putErr)
	}

	return &Resolution{PlantKey: plantKey, Targets: generated, Source: SourceGenerated}, nil
}
