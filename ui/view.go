package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kunpehx/parrot/i18n"
	"github.com/kunpehx/parrot/youdao"
)

var (
	hintStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	langStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	subtitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	accessoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	spinnerLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("…")
)

func (m Model) View() string {
	if m.confErr != nil {
		return errorStyle.Render(i18n.T("Language Conflict")) + "\n" +
			i18n.T("Your first language and second language must be different.") + "\n\n" +
			m.confErr.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	if m.sess.Loading() {
		b.WriteString(" " + spinnerLabel)
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n")

	switch code := m.sess.LastErrorCode; code {
	case youdao.CodeNoQuery:
		b.WriteString(emptyStyle.Render(i18n.T("Type something to translate.")) + "\n")

	case youdao.CodeSuccess, youdao.CodeWarning:
		m.renderSections(&b)

	default:
		b.WriteString(errorStyle.Render(i18n.T("Sorry! We have some problems..")) + "\n")
		b.WriteString("  code: " + code + "\n")
		b.WriteString("  help: " + HelpURL + "\n")
	}

	return b.String()
}

func (m Model) renderSections(b *strings.Builder) {
	row := 0
	for _, s := range m.sess.Sections {
		if s.Hint != "" {
			header := hintStyle.Render(s.Hint)
			if s.LanguageLabel != "" {
				header += "  " + langStyle.Render(s.LanguageLabel)
			}
			b.WriteString(header + "\n")
		}
		// Sections can legitimately have zero items; the header alone
		// is rendered then.
		for _, item := range s.Items {
			marker := "  "
			if row == m.cursor {
				marker = cursorStyle.Render("> ")
			}
			line := marker + item.Title
			if item.Subtitle != "" {
				line += "  " + subtitleStyle.Render(item.Subtitle)
			}
			if item.AccessoryLabel != "" {
				line += "  " + accessoryStyle.Render(item.AccessoryLabel)
			}
			b.WriteString(line + "\n")
			row++
		}
	}
}
