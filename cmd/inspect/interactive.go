package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/opaque"
	"github.com/wippyai/opaque/export"
	"github.com/wippyai/opaque/handle"
	"github.com/wippyai/opaque/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type entryInfo struct {
	id       export.ID
	typeName string
	count    int
}

type inspectModel struct {
	err      error
	reg      *registry.Registry
	table    *export.Table
	entries  []entryInfo
	input    textinput.Model
	selected int
	adopting bool
}

func newInspectModel(seed int) *inspectModel {
	reg := registry.New()
	table := export.NewTable()

	for i := 0; i < seed; i++ {
		h := handle.FromValueIn(reg, probe{label: fmt.Sprintf("probe-%d", i)})
		table.Put(h)
	}

	m := &inspectModel{reg: reg, table: table}
	m.refresh()
	return m
}

func (m *inspectModel) refresh() {
	m.entries = m.entries[:0]
	m.table.Each(func(id export.ID, p opaque.Provider) bool {
		count := -1
		if c, ok := p.(opaque.Castable); ok {
			count = c.Count()
		}
		m.entries = append(m.entries, entryInfo{
			id:       id,
			typeName: p.TypeName(),
			count:    count,
		})
		return true
	})
	if m.selected >= len(m.entries) {
		m.selected = len(m.entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adopting {
			switch msg.String() {
			case "enter":
				label := strings.TrimSpace(m.input.Value())
				if label != "" {
					h := handle.FromValueIn(m.reg, probe{label: label})
					if _, err := m.table.Put(h); err != nil {
						m.err = err
					}
				}
				m.adopting = false
				m.refresh()
				return m, nil
			case "esc":
				m.adopting = false
				return m, nil
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.table.Close()
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "c":
			if len(m.entries) > 0 {
				e := m.entries[m.selected]
				if p, ok := m.table.Get(e.id); ok {
					if a, ok := p.(opaque.Aliaser); ok {
						if _, err := m.table.Put(a.NewRef()); err != nil {
							m.err = err
						}
					}
				}
				m.refresh()
			}

		case "d":
			if len(m.entries) > 0 {
				m.table.Drop(m.entries[m.selected].id)
				m.refresh()
			}

		case "a":
			m.input = textinput.New()
			m.input.Placeholder = "label"
			m.input.Prompt = "adopt value: "
			m.input.Width = 40
			m.input.Focus()
			m.adopting = true
		}
	}

	return m, nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Opaque Handle Inspector"))
	b.WriteString(fmt.Sprintf("  %d live ids, %d ownership blocks\n\n", m.table.Len(), m.reg.Len()))

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.adopting {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter adopt • esc cancel"))
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString("No live handles.\n\n")
		b.WriteString(helpStyle.Render("a adopt • q quit"))
		return b.String()
	}

	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %s  shares: %d",
			idStyle.Render(fmt.Sprintf("#%04d", e.id)),
			typeStyle.Render(e.typeName),
			e.count)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • c clone • d drop • a adopt • q quit"))
	return b.String()
}

func runInteractive(seed int) error {
	p := tea.NewProgram(newInspectModel(seed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
