package schema

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalText renders the schema as deterministic line-oriented text, one
// event per line sorted by identifier. Two schemas describing the same
// provider produce identical text, which makes the rendering diffable.
func CanonicalText(provider *ProviderSchema) string {
	if provider == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "provider %s %s\n", provider.ID(), provider.Name())

	events := provider.Events()
	sort.Slice(events, func(i, j int) bool {
		if events[i].ID() != events[j].ID() {
			return events[i].ID() < events[j].ID()
		}

		return events[i].Version() < events[j].Version()
	})

	for _, event := range events {
		fmt.Fprintf(&b, "event %d symbol=%s version=%d level=%s opcode=%s",
			event.ID(), event.Symbol(), event.Version(), event.Level(), event.Opcode())

		if event.HasTask() {
			fmt.Fprintf(&b, " task=%s(%d)", event.TaskName(), event.TaskID())
		}

		if event.Keywords() != 0 {
			fmt.Fprintf(&b, " keywords=0x%x", event.Keywords())
		}

		if len(event.Payload()) > 0 {
			fmt.Fprintf(&b, " payload=[%s]", strings.Join(event.Payload(), " "))
		}

		b.WriteString("\n")
	}

	return b.String()
}
