package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/chaos-recipe-cli/internal/application"
)

type refreshPhase int

const (
	phaseSignalling refreshPhase = iota
	phaseWaiting
	phaseDone
	phaseFailed
)

type statusReplyMsg struct {
	status application.Status
	err    error
}

type pollTickMsg struct{}

// refreshModel drives the coordinator: the first status request signals a refresh and fixes the
// baseline, later ones poll until a fetch result has been consumed.
type refreshModel struct {
	ctx      context.Context
	request  func(context.Context) (application.Status, error)
	poll     time.Duration
	spinner  spinner.Model
	failed   lipgloss.Style
	phase    refreshPhase
	baseline uint64
	polls    int
	status   application.Status
	err      error
}

func newRefreshModel(ctx context.Context, request func(context.Context) (application.Status, error), poll time.Duration) refreshModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return refreshModel{
		ctx:     ctx,
		request: request,
		poll:    poll,
		spinner: s,
		failed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

func (m refreshModel) requestStatus() tea.Msg {
	status, err := m.request(m.ctx)
	return statusReplyMsg{status: status, err: err}
}

func (m refreshModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.requestStatus)
}

func (m refreshModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pollTickMsg:
		return m, m.requestStatus
	case statusReplyMsg:
		return m.handleReply(msg)
	default:
		return m, nil
	}
}

func (m refreshModel) handleReply(msg statusReplyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.phase = phaseFailed
		m.err = msg.err
		return m, tea.Quit
	}

	switch {
	case m.phase == phaseSignalling:
		m.phase = phaseWaiting
		m.baseline = msg.status.Refreshes
	case msg.status.Refreshes > m.baseline:
		m.phase = phaseDone
		m.status = msg.status
		return m, tea.Quit
	default:
		m.polls++
	}

	return m, tea.Tick(m.poll, func(time.Time) tea.Msg { return pollTickMsg{} })
}

func (m refreshModel) View() string {
	switch m.phase {
	case phaseSignalling:
		return fmt.Sprintf("%s Signalling stash refresh...", m.spinner.View())
	case phaseWaiting:
		if m.polls == 0 {
			return fmt.Sprintf("%s Reading stash tab...", m.spinner.View())
		}
		return fmt.Sprintf("%s Reading stash tab... (%s)", m.spinner.View(), time.Duration(m.polls)*m.poll)
	case phaseFailed:
		return m.failed.Render("Stash refresh failed.") + "\n"
	default:
		return ""
	}
}

// runRefreshSpinner polls through request until one fetch result has been consumed, drawing progress on output.
func runRefreshSpinner(ctx context.Context, output io.Writer, request func(context.Context) (application.Status, error), poll time.Duration) (application.Status, error) {
	p := tea.NewProgram(
		newRefreshModel(ctx, request, poll),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.Status{}, err
	}

	result, ok := finalModel.(refreshModel)
	if !ok {
		return application.Status{}, fmt.Errorf("unexpected final refresh model type %T", finalModel)
	}

	return result.status, result.err
}
