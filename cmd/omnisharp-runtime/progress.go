package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/conn-castle/omnisharp-client/internal/acquire"
	"github.com/conn-castle/omnisharp-client/internal/fetch"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

type progressMsg struct {
	written int64
	total   int64
}

type progressDoneMsg struct{}

// progressModel renders a single download. Unknown totals show a byte count.
type progressModel struct {
	bar     progress.Model
	written int64
	total   int64
}

func newProgressModel() progressModel {
	return progressModel{bar: progress.New(progress.WithDefaultGradient())}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.written, m.total = msg.written, msg.total
	case progressDoneMsg:
		if m.total > 0 {
			m.written = m.total
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.total <= 0 {
		return fmt.Sprintf(messages.ProgressBytesFmt, m.written)
	}
	return m.bar.ViewAs(float64(m.written)/float64(m.total)) + "\n"
}

// downloadProgress drives a progressModel from fetch callbacks.
type downloadProgress struct {
	program *tea.Program
	done    chan struct{}
}

func startProgress(out io.Writer) *downloadProgress {
	d := &downloadProgress{
		program: tea.NewProgram(newProgressModel(), tea.WithOutput(out), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(d.done)
		_, _ = d.program.Run()
	}()
	return d
}

func (d *downloadProgress) report(written, total int64) {
	d.program.Send(progressMsg{written: written, total: total})
}

func (d *downloadProgress) stop() {
	d.program.Send(progressDoneMsg{})
	<-d.done
}

// progressOptions returns a fetcher with a progress bar on interactive
// terminals. The returned stop func must be called once the download ends.
func progressOptions(out io.Writer, logger *zap.Logger) ([]acquire.Option, func()) {
	if !isInteractive() {
		return nil, func() {}
	}
	bar := startProgress(out)
	fetcher := fetch.New(fetch.WithLogger(logger), fetch.WithProgress(bar.report))
	return []acquire.Option{acquire.WithFetcher(fetcher)}, bar.stop
}
