package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/swb/bytecode"
	"github.com/wippyai/swb/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// ViewCmd opens the interactive viewer.
type ViewCmd struct {
	Input string `arg:"" help:"HTML page or compiled program" type:"existingfile"`
}

func (c *ViewCmd) Run(g *globals) error {
	m := newViewModel(c.Input, g)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type viewMode int

const (
	modeRendered viewMode = iota
	modeListing
)

func (m viewMode) String() string {
	if m == modeListing {
		return "disassembly"
	}
	return "rendered"
}

type viewModel struct {
	err      error
	g        *globals
	prog     *bytecode.Program
	filename string
	viewport viewport.Model
	mode     viewMode
	ready    bool
}

type programLoadedMsg struct {
	err  error
	prog *bytecode.Program
}

func newViewModel(filename string, g *globals) *viewModel {
	return &viewModel{filename: filename, g: g}
}

func (m *viewModel) Init() tea.Cmd {
	return m.load
}

func (m *viewModel) load() tea.Msg {
	prog, err := loadProgram(m.filename, m.g)
	return programLoadedMsg{prog: prog, err: err}
}

// content renders the current mode for the given width.
func (m *viewModel) content(width int) string {
	if m.prog == nil {
		return ""
	}
	if m.mode == modeListing {
		return m.prog.String()
	}

	var b strings.Builder
	t := render.NewTerminal(&b,
		render.WithWidth(width),
		render.WithColors(m.g.cfg.Render.BoldColor, m.g.cfg.Render.ItalicColor))
	if err := render.Run(m.prog, t, nil); err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("render: %v", err)))
	}
	return b.String()
}

func (m *viewModel) refresh() {
	if m.ready {
		m.viewport.SetContent(m.content(m.viewport.Width))
	}
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.mode == modeRendered {
				m.mode = modeListing
			} else {
				m.mode = modeRendered
			}
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}

	case programLoadedMsg:
		m.err = msg.err
		m.prog = msg.prog
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		const chrome = 4 // title, blank, blank, help
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.refresh()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *viewModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.prog == nil || !m.ready {
		return "Loading program..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SWB Viewer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(modeStyle.Render(m.mode.String()))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ scroll • tab toggle view • q quit • %d%%", int(m.viewport.ScrollPercent()*100))))
	return b.String()
}
