package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/navigation"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Stack []domain.Screen // bottom first; the last one is current
}

// GenerateMermaid produces a Mermaid flowchart of the screen graph.
// It applies semantic styling:
// - Home: ((Circle))
// - Registration (input): [/Parallelogram/]
// - Default: [Rectangle]
// Alerts are drawn as dotted self loops, user dismissals as dotted edges.
// It also applies overlay styles (Stack/Current) if provided.
func GenerateMermaid(transitions []navigation.Transition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[domain.Screen]bool)
	declare := func(s domain.Screen) {
		if declared[s] {
			return
		}
		declared[s] = true

		opener, closer := "[", "]"
		switch s {
		case domain.ScreenHome:
			opener, closer = "((", "))" // Circle
		case domain.ScreenRegistration:
			opener, closer = "[/", "/]" // Parallelogram (Input)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(string(s)), opener, s, closer))
	}

	for _, t := range transitions {
		declare(t.From)
		declare(t.To)

		arrow := fmt.Sprintf("-- \"%s\" -->", t.Event)
		switch {
		case t.Alert:
			arrow = fmt.Sprintf("-. ⚡ %s .->", t.Event)
		case t.External:
			arrow = fmt.Sprintf("-. \"%s\" .->", t.Event)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(string(t.From)), arrow, sanitizeMermaidID(string(t.To))))
	}

	// Apply Overlay Styles
	if overlay != nil && len(overlay.Stack) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef stacked fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		last := len(overlay.Stack) - 1
		for _, s := range overlay.Stack[:last] {
			sb.WriteString(fmt.Sprintf("    class %s stacked;\n", sanitizeMermaidID(string(s))))
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.Stack[last]))))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
