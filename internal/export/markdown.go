package export

import (
	"fmt"
	"io"
	"strings"

	"eventlex/internal/domain"
)

// WriteMarkdown renders a dictionary as a Markdown document: a summary
// table plus one detail section per event.
func WriteMarkdown(w io.Writer, dict *domain.Dictionary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analytics Event Dictionary\n\n")
	fmt.Fprintf(&b, "Version %s, generated %s, %d events\n\n",
		dict.Version, dict.GeneratedAt.Format("2006-01-02 15:04 UTC"), len(dict.Events))

	b.WriteString("| Event | Type | Action | Trigger | API Binding |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for i := range dict.Events {
		ev := &dict.Events[i]
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | `%s` |\n",
			ev.Name, ev.EventType, ev.ActionType, escapePipes(ev.TriggerCondition), ev.APIBinding)
	}
	b.WriteString("\n")

	for i := range dict.Events {
		ev := &dict.Events[i]
		fmt.Fprintf(&b, "## `%s`\n\n", ev.Name)
		fmt.Fprintf(&b, "%s\n\n", ev.Purpose)
		fmt.Fprintf(&b, "- **Trigger:** %s\n", ev.TriggerCondition)
		if ev.Actor != "" || ev.Object != "" {
			fmt.Fprintf(&b, "- **Actor / Object:** %s / %s\n", ev.Actor, ev.Object)
		}
		if ev.ContextSurface != "" {
			fmt.Fprintf(&b, "- **Surface:** %s\n", ev.ContextSurface)
		}
		fmt.Fprintf(&b, "- **Lifecycle:** %s\n", ev.Lifecycle)
		if ev.ErrorCode != "" || ev.ErrorMessage != "" {
			fmt.Fprintf(&b, "- **Error:** %s %s\n", ev.ErrorCode, ev.ErrorMessage)
		}
		if len(ev.ContextKeys) > 0 {
			fmt.Fprintf(&b, "- **Context keys:** %s\n", strings.Join(ev.ContextKeys, ", "))
		}

		if len(ev.Properties) > 0 {
			b.WriteString("\n| Property | Type | Required | Description |\n")
			b.WriteString("|---|---|---|---|\n")
			for _, p := range ev.Properties {
				fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n",
					p.Name, p.Type, formatRequired(p.Required), escapePipes(p.Description))
			}
		}

		if ev.CodeSample != "" {
			fmt.Fprintf(&b, "\n```js\n%s\n```\n", ev.CodeSample)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
