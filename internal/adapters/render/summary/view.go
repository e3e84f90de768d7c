package summary

import (
	"fmt"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Title  string
	Prefix string
	// Footer lines are rendered faint below the events.
	Footer []string
}

func renderView(sections []section, t tally, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Console Session Telemetry"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("events: %d", len(sections))),
	}

	if len(sections) == 0 {
		lines = append(lines, s.empty.Render("No combined events emitted."))
	} else {
		lines = append(lines, s.header.Render(t.String()))
	}

	for _, sec := range sections {
		lines = append(lines, s.section.Render(renderEvent(sec.label, sec.event, opts, s)))
	}

	for _, footer := range opts.Footer {
		lines = append(lines, s.empty.Render(footer))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEvent(label string, event domain.CombinedEvent, opts RenderOptions, s styles) string {
	keys := event.Keys()
	parts := []string{s.event.Render(label)}

	width := 0
	for _, key := range keys {
		width = max(width, len(domain.TrimPrefix(opts.Prefix, key)))
	}

	for _, key := range keys {
		label := fmt.Sprintf("%-*s", width, domain.TrimPrefix(opts.Prefix, key))
		parts = append(parts, fmt.Sprintf("  %s  %s", s.key.Render(label), renderValue(event.Properties[key], s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderValue(value any, s styles) string {
	switch v := value.(type) {
	case nil:
		return s.nullVal.Render("null")
	case bool:
		if v {
			return s.trueVal.Render("true")
		}
		return s.falseVal.Render("false")
	case int64, int:
		return s.intValue.Render(fmt.Sprint(v))
	default:
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
}
