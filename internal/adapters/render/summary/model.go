package summary

import (
	"errors"
	"fmt"
	"io"

	"github.com/bnema/pmc-telemetry/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// section is one combined event with its display label. Solution closes are
// numbered in emission order since a host instance usually closes several.
type section struct {
	label string
	event domain.CombinedEvent
}

// tally counts boundaries and the console commands reported at solution
// closes. Commands from the instance close are left out so a replay of
// one lifetime is not counted twice.
type tally struct {
	solutionCloses int
	instanceCloses int
	commands       int64
}

func (t tally) String() string {
	return fmt.Sprintf("solution closes: %d, instance closes: %d, console commands: %d",
		t.solutionCloses, t.instanceCloses, t.commands)
}

type model struct {
	sections []section
	tally    tally
	opts     RenderOptions
	styles   styles
	output   string
}

func newModel(events []domain.CombinedEvent, opts RenderOptions) model {
	m := model{
		opts:   opts,
		styles: newStyles(),
	}

	for _, event := range events {
		label := event.Name
		switch event.Name {
		case domain.SolutionCloseEvent:
			m.tally.solutionCloses++
			label = fmt.Sprintf("%s #%d", event.Name, m.tally.solutionCloses)
			if count, ok := event.Property(opts.Prefix, domain.FieldExecutedCommandCount); ok {
				if n, ok := count.(int64); ok {
					m.tally.commands += n
				}
			}
		case domain.InstanceCloseEvent:
			m.tally.instanceCloses++
		}
		m.sections = append(m.sections, section{label: label, event: event})
	}

	return m
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.sections, m.tally, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out events as a human readable summary.
func Render(events []domain.CombinedEvent, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(events, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
