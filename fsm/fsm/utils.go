package fsm

import (
	"fmt"
	"sort"
	"strings"
)

// Visualize renders the machine as a graphviz digraph, current state first
func Visualize(f *FSM) string {
	var (
		sb    strings.Builder
		lines []string
		first []string
	)

	sb.WriteString("digraph fsm {\n")
	for key, tr := range f.transitions {
		line := fmt.Sprintf("    %q -> %q [ label = %q ];\n", key.source, tr.dstState, key.event)
		if key.source == f.State() {
			first = append(first, line)
		} else {
			lines = append(lines, line)
		}
	}
	sort.Strings(first)
	sort.Strings(lines)
	for _, line := range append(first, lines...) {
		sb.WriteString(line)
	}

	states := make([]string, 0)
	for state := range f.finStates {
		states = append(states, fmt.Sprintf("    %q [ shape = doublecircle ];\n", state))
	}
	sort.Strings(states)
	sb.WriteString("\n")
	for _, state := range states {
		sb.WriteString(state)
	}
	sb.WriteString("}\n")

	return sb.String()
}
