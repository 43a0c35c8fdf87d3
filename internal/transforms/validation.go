package transforms

import (
	"fmt"
	"strings"
)

// ValidationResult holds the results of pipeline validation.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result.
func (vr *ValidationResult) AddError(format string, args ...any) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result.
func (vr *ValidationResult) AddWarning(format string, args ...any) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks every transformer in the registry for:
//   - missing dependencies
//   - dependencies pointing against stage order (warning)
//   - circular dependencies
//   - consumed Result.Data keys that nothing earlier in the pipeline produces
func Validate(r *Registry) *ValidationResult {
	return ValidateSet(r.all())
}

// ValidateSet is Validate over an explicit transformer set.
func ValidateSet(transformers []Transformer) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(transformers) == 0 {
		result.AddWarning("no transformers registered")
		return result
	}

	byName := make(map[string]Transformer, len(transformers))
	for _, t := range transformers {
		byName[t.Name()] = t
	}

	for _, t := range transformers {
		name := t.Name()
		stage := t.Stage()
		deps := t.Dependencies()

		if !IsValidStage(stage) {
			result.AddError("transformer %q has invalid stage %q", name, stage)
		}

		for _, dep := range deps.MustRunAfter {
			depT, ok := byName[dep]
			if !ok {
				result.AddError("transformer %q depends on missing transformer %q (MustRunAfter)", name, dep)
				continue
			}
			if StageIndex(depT.Stage()) > StageIndex(stage) {
				result.AddWarning("transformer %q (stage %s) depends on %q (stage %s) which runs in a later stage",
					name, stage, dep, depT.Stage())
			}
		}

		for _, after := range deps.MustRunBefore {
			afterT, ok := byName[after]
			if !ok {
				result.AddError("transformer %q requires missing transformer %q to run after it (MustRunBefore)", name, after)
				continue
			}
			if StageIndex(afterT.Stage()) < StageIndex(stage) {
				result.AddWarning("transformer %q (stage %s) must run before %q (stage %s) which runs in an earlier stage",
					name, stage, after, afterT.Stage())
			}
		}
	}

	ordered, err := BuildPipeline(transformers)
	if err != nil {
		if strings.Contains(err.Error(), "circular") {
			result.AddError("circular dependency detected: %v", err)
		} else {
			result.AddError("pipeline build failed: %v", err)
		}
		return result
	}

	produced := make(map[string]bool)
	for _, t := range ordered {
		deps := t.Dependencies()
		for _, key := range deps.Consumes {
			if !produced[key] {
				result.AddError("transformer %q consumes data key %q which no earlier transformer produces", t.Name(), key)
			}
		}
		for _, key := range deps.Produces {
			produced[key] = true
		}
	}

	return result
}

// FormatValidationResult renders a validation result for terminal output.
func FormatValidationResult(result *ValidationResult) string {
	var sb strings.Builder

	sb.WriteString("Transformer Pipeline Validation\n")
	sb.WriteString("===============================\n\n")

	if result.Valid && len(result.Warnings) == 0 {
		sb.WriteString("✓ Pipeline is valid with no warnings\n")
		return sb.String()
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(&sb, "✗ Errors (%d):\n", len(result.Errors))
		for i, err := range result.Errors {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, err)
		}
		sb.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&sb, "⚠ Warnings (%d):\n", len(result.Warnings))
		for i, warn := range result.Warnings {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, warn)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
