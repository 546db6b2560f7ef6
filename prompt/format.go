package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/tbxark/formassist/forms"
)

// MarkerToken is the literal the model must emit in front of the final record.
const MarkerToken = "FORM_DATA"

func formatFieldTable(fields []forms.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("**COLLECT THESE FIELDS:**\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("#", "Field", "JSON key", "Rules")
	for i, field := range fields {
		_ = table.Append(strconv.Itoa(i+1), field.Label, field.Key, field.Constraints())
	}
	_ = table.Render()
	return strings.TrimRight(buf.String(), "\n")
}

func formatNotesSection(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("**NOTES:**")
	for _, note := range notes {
		sb.WriteString("\n- ")
		sb.WriteString(note)
	}
	return sb.String()
}

func formatExampleSection(tpl *forms.Template) string {
	if len(tpl.Example) == 0 {
		return ""
	}
	return fmt.Sprintf("**JSON OUTPUT FORMAT:**\n%s", ExampleMarker(tpl))
}

// ExampleMarker renders the template's example record in the doubled-brace
// marker syntax, keys in declaration order.
func ExampleMarker(tpl *forms.Template) string {
	return RenderMarker(tpl.Example)
}

// RenderMarker renders ordered pairs as {{FORM_DATA: {{"k": "v", ...}}}}.
func RenderMarker(pairs []forms.Pair) string {
	var sb strings.Builder
	sb.WriteString("{{" + MarkerToken + ": {{")
	for i, p := range pairs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quote(p.Key))
		sb.WriteString(": ")
		sb.WriteString(quote(p.Value))
	}
	sb.WriteString("}}}}")
	return sb.String()
}

func quote(s string) string {
	out, err := sonic.MarshalString(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return out
}
