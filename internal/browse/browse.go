// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package browse pages rendered output in a scrollable terminal viewport.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// Model is a read-only pager over content.
type Model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

// New returns a pager titled title. The viewport is sized on the first
// WindowSizeMsg.
func New(title, content string) Model {
	return Model{title: title, content: strings.TrimRight(content, "\n")}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := max(msg.Height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.header(), m.viewport.View(), m.footer())
}

func (m Model) header() string {
	return titleStyle.Render(m.title)
}

func (m Model) footer() string {
	pct := 0.0
	if m.ready {
		pct = m.viewport.ScrollPercent() * 100
	}
	return footerStyle.Render(fmt.Sprintf("%3.f%%  q quit", pct))
}

// Run pages content until the user quits or ctx is done.
func Run(ctx context.Context, title, content string) error {
	p := tea.NewProgram(New(title, content),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to browse: %w", err)
	}
	return nil
}
