package transforms

import (
	"fmt"
	"sort"
)

// topologicalSort orders the transformers of one stage using Kahn's algorithm.
// Ties are broken by name so the result is deterministic.
func topologicalSort(transformers []Transformer) ([]Transformer, error) {
	if len(transformers) == 0 {
		return []Transformer{}, nil
	}

	byName := make(map[string]Transformer, len(transformers))
	for _, t := range transformers {
		name := t.Name()
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("duplicate transformer name: %q", name)
		}
		byName[name] = t
	}

	edges := make(map[string][]string, len(transformers))
	inDegree := make(map[string]int, len(transformers))
	for name := range byName {
		edges[name] = nil
		inDegree[name] = 0
	}

	// Names outside this stage are either in another stage (ordered by
	// StageOrder) or missing (reported by ValidateDependencies).
	for _, t := range transformers {
		name := t.Name()
		deps := t.Dependencies()
		for _, dep := range deps.MustRunAfter {
			if _, ok := byName[dep]; ok {
				edges[dep] = append(edges[dep], name)
				inDegree[name]++
			}
		}
		for _, after := range deps.MustRunBefore {
			if _, ok := byName[after]; ok {
				edges[name] = append(edges[name], after)
				inDegree[after]++
			}
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	result := make([]Transformer, 0, len(transformers))
	visited := make(map[string]bool, len(transformers))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, byName[current])

		neighbors := edges[current]
		sort.Strings(neighbors)
		for _, next := range neighbors {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(transformers) {
		var unvisited []string
		for name := range byName {
			if !visited[name] {
				unvisited = append(unvisited, name)
			}
		}
		sort.Strings(unvisited)
		return nil, fmt.Errorf("circular dependency detected involving transformers: %v", unvisited)
	}

	return result, nil
}

// BuildPipeline constructs the execution order: transformers are grouped by
// stage and sorted by their dependencies inside each stage.
func BuildPipeline(transformers []Transformer) ([]Transformer, error) {
	if len(transformers) == 0 {
		return []Transformer{}, nil
	}

	seen := make(map[string]bool, len(transformers))
	byStage := make(map[Stage][]Transformer)
	for _, t := range transformers {
		if !IsValidStage(t.Stage()) {
			return nil, fmt.Errorf("transformer %q has invalid stage: %q", t.Name(), t.Stage())
		}
		if seen[t.Name()] {
			return nil, fmt.Errorf("duplicate transformer name: %q", t.Name())
		}
		seen[t.Name()] = true
		byStage[t.Stage()] = append(byStage[t.Stage()], t)
	}

	result := make([]Transformer, 0, len(transformers))
	for _, stage := range StageOrder {
		sorted, err := topologicalSort(byStage[stage])
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		result = append(result, sorted...)
	}

	return result, nil
}

// ValidateDependencies checks that every referenced transformer is present and
// that the set can be ordered.
func ValidateDependencies(transformers []Transformer) error {
	if len(transformers) == 0 {
		return nil
	}

	names := make(map[string]bool, len(transformers))
	for _, t := range transformers {
		names[t.Name()] = true
	}

	for _, t := range transformers {
		deps := t.Dependencies()
		for _, dep := range deps.MustRunAfter {
			if !names[dep] {
				return fmt.Errorf("transformer %q depends on missing transformer %q", t.Name(), dep)
			}
		}
		for _, after := range deps.MustRunBefore {
			if !names[after] {
				return fmt.Errorf("transformer %q requires missing transformer %q", t.Name(), after)
			}
		}
	}

	_, err := BuildPipeline(transformers)
	return err
}
