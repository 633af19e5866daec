package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driving"
)

// eventMsg wraps one pipeline progress event.
type eventMsg driving.ProgressEvent

// resultMsg carries the pipeline outcome into the view.
type resultMsg struct {
	doc *domain.AnalyzedDocument
	err error
}

// progressModel drives the live analysis view: a spinner and a bar fed
// by pipeline progress events.
type progressModel struct {
	name     string
	spinner  spinner.Model
	bar      progress.Model
	events   <-chan tea.Msg
	message  string
	percent  int
	doc      *domain.AnalyzedDocument
	err      error
	done     bool
	canceled bool
}

func newProgressModel(name string, events <-chan tea.Msg) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return progressModel{
		name:    name,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		events:  events,
		message: "Preparando análise...",
	}
}

// waitForEvent blocks on the pipeline channel and forwards the next
// message into the bubbletea loop.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.canceled = true
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case eventMsg:
		m.message = msg.Message
		if msg.Percent > m.percent {
			m.percent = msg.Percent
		}
		return m, waitForEvent(m.events)

	case resultMsg:
		m.doc = msg.doc
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Analisando " + m.name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.message))
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("ctrl+c para cancelar"))
	b.WriteString("\n")

	return b.String()
}

// RunAnalysis executes the pipeline behind a live progress view and
// returns its result once the view exits. Ctrl+C cancels the pipeline.
func RunAnalysis(ctx context.Context, svc driving.AnalysisService, raw *domain.RawDocument) (*domain.AnalyzedDocument, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, 16)
	p := tea.NewProgram(newProgressModel(raw.Name, events))

	go runPipeline(ctx, svc, raw, events)

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view failed: %w", err)
	}

	m, ok := final.(progressModel)
	if !ok {
		return nil, fmt.Errorf("unexpected progress model type %T", final)
	}

	if m.canceled {
		// Stop the pipeline and unblock its progress callback. The drain
		// exits once runPipeline closes the channel.
		cancel()
		go func() {
			for range events { //nolint:revive
			}
		}()
		return nil, context.Canceled
	}

	return m.doc, m.err
}

// runPipeline feeds progress events and the final result into the view
// channel, then closes it so any drain on the other side terminates.
func runPipeline(ctx context.Context, svc driving.AnalysisService, raw *domain.RawDocument, events chan<- tea.Msg) {
	defer close(events)

	doc, err := svc.Analyze(ctx, raw, func(e driving.ProgressEvent) {
		events <- eventMsg(e)
	})
	events <- resultMsg{doc: doc, err: err}
}
