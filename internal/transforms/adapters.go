package transforms

import (
	"context"

	"git.home.luguber.info/inful/docsource/internal/observability"
	"git.home.luguber.info/inful/docsource/internal/source"
)

// Adapt converts ordered transformers into the Loader's function list.
func Adapt(ts []Transformer) []source.Transformer {
	out := make([]source.Transformer, 0, len(ts))
	for _, t := range ts {
		out = append(out, adapt(t))
	}
	return out
}

// LoadOptions is Adapt with names preserved for logs, metrics and errors.
func LoadOptions(ts []Transformer) []source.LoadOption {
	opts := make([]source.LoadOption, 0, len(ts))
	for _, t := range ts {
		opts = append(opts, source.WithNamedTransformer(t.Name(), adapt(t)))
	}
	return opts
}

func adapt(t Transformer) source.Transformer {
	return func(ctx context.Context, r *source.Result) error {
		return t.Transform(observability.WithStage(ctx, string(t.Stage())), r)
	}
}
