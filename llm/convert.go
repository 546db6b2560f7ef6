package llm

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// splitSystem pulls system messages out of the transcript; providers that
// take the system prompt separately get it joined, the rest keep order.
func splitSystem(input []*schema.Message) (string, []*schema.Message) {
	var system []string
	turns := make([]*schema.Message, 0, len(input))
	for _, m := range input {
		if m == nil {
			continue
		}
		if m.Role == schema.System {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(system, "\n\n"), turns
}
