// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/rowsync/internal/detector"
	"github.com/tfctl/rowsync/internal/dispatcher"
	"github.com/tfctl/rowsync/internal/items"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/output"
	"github.com/tfctl/rowsync/internal/surface/memory"
)

// Source produces the next list to show.
type Source func() ([]items.Item, error)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	insertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c800"))
	changedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
	movedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e04040"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the list. It owns the surface, so copies
// of a Model share rows.
type Model struct {
	rows    *memory.Rows[items.Item]
	current []items.Item
	sync    *dispatcher.Dispatcher[items.Item]
	next    Source
	reload  Source
	keys    keyMap
	help    help.Model
	last    []detector.Change
	reset   bool
	batches int
	err     error
}

// New returns a model showing initial. next is called to regenerate the list
// and reload, when not nil, to read it again from its origin.
func New(initial []items.Item, next, reload Source, opts ...dispatcher.Option) Model {
	return Model{
		rows:    memory.New(initial),
		current: initial,
		sync:    dispatcher.New(detector.NewKeyed(items.KeyOf, items.SameContent), opts...),
		next:    next,
		reload:  reload,
		keys:    newKeyMap(reload != nil),
		help:    help.New(),
	}
}

// Run shows m until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Regenerate):
			m = m.refresh(m.next)
		case key.Matches(msg, m.keys.Reload):
			m = m.refresh(m.reload)
		}
	}
	return m, nil
}

// refresh pulls a new list from src and reconciles it onto the rows.
func (m Model) refresh(src Source) Model {
	if src == nil {
		return m
	}

	next, err := src()
	if err != nil {
		m.err = err
		return m
	}

	m.rows.ClearMarks()
	m.reset = m.rows.ItemCount() == 0
	m.last = m.sync.Reconcile(m.rows, m.current, next)
	m.batches++

	m.err = m.rows.Settle()
	if m.err == nil {
		m.err = m.rows.Verify(items.SameKey, items.SameContent)
	}
	if m.err != nil {
		log.Errorf("batch %d: %v", m.batches, m.err)
	}

	m.current = next
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%d items", m.rows.ItemCount())))
	b.WriteString("\n\n")

	for _, row := range m.rows.Rows() {
		b.WriteString(renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.Status())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Status summarizes the last batch.
func (m Model) Status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("error: " + m.err.Error())
	case m.batches == 0:
		return statusStyle.Render("no batches yet")
	case m.reset:
		return statusStyle.Render(fmt.Sprintf("batch %d: reset", m.batches))
	}
	return statusStyle.Render(fmt.Sprintf("batch %d: %s", m.batches, output.Summary(m.last)))
}

// Rows returns the visible rows with the marks of the last batch.
func (m Model) Rows() []memory.Row[items.Item] { return m.rows.Rows() }

func renderRow(row memory.Row[items.Item]) string {
	line := row.Item.String()
	switch row.Mark {
	case memory.Inserted:
		return insertedStyle.Render("+ " + line)
	case memory.Changed:
		return changedStyle.Render("~ " + line)
	case memory.Moved:
		return movedStyle.Render("> " + line)
	}
	return "  " + line
}
