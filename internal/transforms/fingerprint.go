package transforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsource/internal/source"
)

// Fields hashed as the document body rather than as front matter.
var bodyFields = []string{"content", "body"}

type fingerprintTransformer struct{}

// Fingerprint stores a content fingerprint on every page so callers can detect
// changes between loads.
func Fingerprint() Transformer { return fingerprintTransformer{} }

func (fingerprintTransformer) Name() string { return "fingerprint" }

func (fingerprintTransformer) Stage() Stage { return StageEnrich }

// Titles may be filled in, so hash after they are final.
func (fingerprintTransformer) Dependencies() Dependencies {
	return Dependencies{
		MustRunAfter: []string{"titles"},
		Produces:     []string{DataFingerprints},
	}
}

func (fingerprintTransformer) Transform(ctx context.Context, r *source.Result) error {
	fingerprints := make(map[string]string, len(r.Pages))

	for _, p := range r.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		fp, err := ComputeFingerprint(p.Data)
		if err != nil {
			return fmt.Errorf("fingerprint %s: %w", p.File.Path, err)
		}
		p.Set(mdfp.FingerprintField, fp)
		fingerprints[p.File.FlattenedPath] = fp
	}

	r.Data[DataFingerprints] = fingerprints
	return nil
}

// ComputeFingerprint hashes page data: every field except the fingerprint and
// body fields is serialized as YAML, the first string body field is the body.
func ComputeFingerprint(data map[string]any) (string, error) {
	fields := make(map[string]any, len(data))
	body := ""
	for k, v := range data {
		if k == mdfp.FingerprintField || isBodyField(k) {
			continue
		}
		fields[k] = v
	}
	for _, k := range bodyFields {
		if s, ok := data[k].(string); ok {
			body = s
			break
		}
	}

	frontmatter := ""
	if len(fields) > 0 {
		raw, err := yaml.Marshal(fields)
		if err != nil {
			return "", err
		}
		frontmatter = strings.TrimSuffix(string(raw), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(frontmatter, body), nil
}

func isBodyField(k string) bool {
	for _, f := range bodyFields {
		if k == f {
			return true
		}
	}
	return false
}
