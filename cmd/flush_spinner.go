package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sinkClosedMsg struct {
	index int
	err   error
}

// sinkFlushModel closes the sinks of a replay one at a time, showing which
// sink is being released and how many combined events it may still export.
type sinkFlushModel struct {
	ctx     context.Context
	spinner spinner.Model
	closers []sinkCloser
	events  int
	current int
	errs    []error
	done    bool
}

func newSinkFlushModel(ctx context.Context, sinks *sinkSet, events int) sinkFlushModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return sinkFlushModel{
		ctx:     ctx,
		spinner: s,
		closers: sinks.closers,
		events:  events,
		done:    len(sinks.closers) == 0,
	}
}

func (m sinkFlushModel) closeSink(index int) tea.Cmd {
	closer := m.closers[index]
	ctx := m.ctx
	return func() tea.Msg {
		return sinkClosedMsg{index: index, err: closer.run(ctx)}
	}
}

func (m sinkFlushModel) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.closeSink(0))
}

func (m sinkFlushModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sinkClosedMsg:
		if msg.err != nil {
			m.errs = append(m.errs, msg.err)
		}
		m.current = msg.index + 1
		if m.current >= len(m.closers) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.closeSink(m.current)
	default:
		return m, nil
	}
}

func (m sinkFlushModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s Closing %s sink (%d/%d), %s to flush...",
		m.spinner.View(), m.closers[m.current].sink, m.current+1, len(m.closers), eventCount(m.events))
}

// Err joins the failures of every closer that ran.
func (m sinkFlushModel) Err() error {
	return errors.Join(m.errs...)
}

func eventCount(n int) string {
	if n == 1 {
		return "1 combined event"
	}
	return fmt.Sprintf("%d combined events", n)
}

func runSinkFlushSpinner(ctx context.Context, output io.Writer, sinks *sinkSet, events int) error {
	p := tea.NewProgram(
		newSinkFlushModel(ctx, sinks, events),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(sinkFlushModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.Err()
}
