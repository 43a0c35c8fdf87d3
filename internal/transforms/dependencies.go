package transforms

import (
	"context"

	"git.home.luguber.info/inful/docsource/internal/source"
)

// Stage represents a major phase in the transformer pipeline.
// Stages execute in the order defined by StageOrder.
type Stage string

const (
	// StagePrepare normalizes raw page and meta data.
	StagePrepare Stage = "prepare"

	// StageEnrich adds computed fields (titles, slugs, fingerprints).
	StageEnrich Stage = "enrich"

	// StageStructure derives artifacts from the document tree.
	StageStructure Stage = "structure"

	// StageFinalize performs post-processing such as ordering.
	StageFinalize Stage = "finalize"
)

// StageOrder defines the execution order of stages.
var StageOrder = []Stage{
	StagePrepare,
	StageEnrich,
	StageStructure,
	StageFinalize,
}

// Transformer is the dependency-based interface for result transformations.
type Transformer interface {
	// Name returns the unique identifier for this transformer (lowercase snake_case)
	Name() string

	// Stage returns the pipeline stage where this transformer executes
	Stage() Stage

	// Dependencies declares ordering constraints and the Result.Data keys it touches
	Dependencies() Dependencies

	// Transform enriches the shared result in place
	Transform(ctx context.Context, r *source.Result) error
}

// Dependencies declares explicit ordering constraints and data contracts.
type Dependencies struct {
	// MustRunAfter lists transformer names that must complete before this one.
	MustRunAfter []string

	// MustRunBefore lists transformer names that must run after this one.
	MustRunBefore []string

	// Produces lists Result.Data keys this transformer writes.
	Produces []string

	// Consumes lists Result.Data keys this transformer reads.
	Consumes []string
}

// StageIndex returns the numeric index of a stage in StageOrder.
// Returns -1 if the stage is not found.
func StageIndex(stage Stage) int {
	for i, s := range StageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// IsValidStage returns true if the stage is defined in StageOrder.
func IsValidStage(stage Stage) bool {
	return StageIndex(stage) >= 0
}
