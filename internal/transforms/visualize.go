package transforms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VisualizationFormat represents the output format for pipeline visualization.
type VisualizationFormat string

const (
	FormatText    VisualizationFormat = "text"
	FormatMermaid VisualizationFormat = "mermaid"
	FormatDOT     VisualizationFormat = "dot"
	FormatJSON    VisualizationFormat = "json"
)

// Visualize renders an ordered pipeline (as returned by BuildPipeline or Select).
func Visualize(ts []Transformer, format VisualizationFormat) (string, error) {
	switch format {
	case FormatText:
		return visualizeText(ts), nil
	case FormatMermaid:
		return visualizeMermaid(ts), nil
	case FormatDOT:
		return visualizeDOT(ts), nil
	case FormatJSON:
		return visualizeJSON(ts)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func groupByStage(ts []Transformer) map[Stage][]Transformer {
	byStage := make(map[Stage][]Transformer)
	for _, t := range ts {
		byStage[t.Stage()] = append(byStage[t.Stage()], t)
	}
	return byStage
}

func visualizeText(ts []Transformer) string {
	var sb strings.Builder

	sb.WriteString("Transformer Pipeline\n")
	sb.WriteString("====================\n\n")

	byStage := groupByStage(ts)
	first := true
	for i, stage := range StageOrder {
		stageTs := byStage[stage]
		if len(stageTs) == 0 {
			continue
		}
		if !first {
			sb.WriteString("↓\n")
		}
		first = false

		fmt.Fprintf(&sb, "┌─ Stage %d: %s\n", i+1, stage)
		for j, t := range stageTs {
			deps := t.Dependencies()
			prefix, connector := "├──", "│  "
			if j == len(stageTs)-1 {
				prefix, connector = "└──", "   "
			}
			fmt.Fprintf(&sb, "│ %s [%s]\n", prefix, t.Name())
			if len(deps.MustRunAfter) > 0 {
				fmt.Fprintf(&sb, "│ %s  ⤷ depends on: %s\n", connector, strings.Join(deps.MustRunAfter, ", "))
			}
			if len(deps.Produces) > 0 {
				fmt.Fprintf(&sb, "│ %s  ⇢ produces: %s\n", connector, strings.Join(deps.Produces, ", "))
			}
		}
		sb.WriteString("│\n")
	}

	fmt.Fprintf(&sb, "\nTotal: %d transformers across %d stages\n", len(ts), len(byStage))
	return sb.String()
}

// mermaidID strips characters Mermaid does not accept in node ids.
func mermaidID(name string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(name)
}

func visualizeMermaid(ts []Transformer) string {
	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString("graph TD\n")

	byStage := groupByStage(ts)
	for _, stage := range StageOrder {
		stageTs := byStage[stage]
		if len(stageTs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph %s[\"Stage: %s\"]\n", stage, stage)
		for _, t := range stageTs {
			fmt.Fprintf(&sb, "        %s[\"%s\"]\n", mermaidID(t.Name()), t.Name())
		}
		sb.WriteString("    end\n")
	}
	sb.WriteString("\n")

	for _, t := range ts {
		deps := t.Dependencies()
		for _, dep := range deps.MustRunAfter {
			fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(dep), mermaidID(t.Name()))
		}
		for _, after := range deps.MustRunBefore {
			fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(t.Name()), mermaidID(after))
		}
	}

	sb.WriteString("```\n")
	return sb.String()
}

func visualizeDOT(ts []Transformer) string {
	var sb strings.Builder

	sb.WriteString("digraph TransformerPipeline {\n")
	sb.WriteString("    rankdir=TB;\n")
	sb.WriteString("    node [shape=box, style=rounded];\n\n")

	byStage := groupByStage(ts)
	for i, stage := range StageOrder {
		stageTs := byStage[stage]
		if len(stageTs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph cluster_%d {\n", i)
		fmt.Fprintf(&sb, "        label=\"Stage: %s\";\n", stage)
		sb.WriteString("        style=filled;\n")
		sb.WriteString("        color=lightgrey;\n\n")
		for _, t := range stageTs {
			fmt.Fprintf(&sb, "        %q;\n", t.Name())
		}
		sb.WriteString("    }\n\n")
	}

	for _, t := range ts {
		deps := t.Dependencies()
		for _, dep := range deps.MustRunAfter {
			fmt.Fprintf(&sb, "    %q -> %q;\n", dep, t.Name())
		}
		for _, after := range deps.MustRunBefore {
			fmt.Fprintf(&sb, "    %q -> %q;\n", t.Name(), after)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

type jsonTransformer struct {
	Name          string   `json:"name"`
	Stage         Stage    `json:"stage"`
	Order         int      `json:"order"`
	MustRunAfter  []string `json:"mustRunAfter"`
	MustRunBefore []string `json:"mustRunBefore"`
	Produces      []string `json:"produces"`
	Consumes      []string `json:"consumes"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func visualizeJSON(ts []Transformer) (string, error) {
	items := make([]jsonTransformer, 0, len(ts))
	for i, t := range ts {
		deps := t.Dependencies()
		items = append(items, jsonTransformer{
			Name:          t.Name(),
			Stage:         t.Stage(),
			Order:         i + 1,
			MustRunAfter:  nonNil(deps.MustRunAfter),
			MustRunBefore: nonNil(deps.MustRunBefore),
			Produces:      nonNil(deps.Produces),
			Consumes:      nonNil(deps.Consumes),
		})
	}
	raw, err := json.MarshalIndent(struct {
		Transformers []jsonTransformer `json:"transformers"`
	}{items}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal pipeline: %w", err)
	}
	return string(raw) + "\n", nil
}
