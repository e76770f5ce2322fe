package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmartins/livraria/internal/domain"
	"github.com/mmartins/livraria/internal/tui/styles"
	"github.com/mmartins/livraria/internal/validate"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.state {
	case viewMenu:
		body = m.menuView()
	case viewList:
		body = m.listView()
	case viewResults:
		body = m.resultsView()
	case viewBackups:
		body = m.backupsView()
	default:
		body = m.form.View()
	}

	sections := []string{body}
	if status := m.statusView(); status != "" {
		sections = append(sections, "", status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) menuView() string {
	rows := make([]string, 0, len(menuItems)+4)
	rows = append(rows,
		styles.TitleStyle.Render("Livraria"),
		styles.SubtitleStyle.Render("Bookstore catalog manager"),
		"",
	)

	for i, item := range menuItems {
		label := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == m.menuCursor {
			rows = append(rows, styles.SelectedStyle.Render(label))
		} else {
			rows = append(rows, " "+styles.SubtitleStyle.Render(label))
		}
	}

	rows = append(rows, styles.HelpStyle.Render("↑/↓: move • enter: select • 1-9: jump • q: quit"))
	return styles.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) listView() string {
	books := m.visibleBooks()

	rows := make([]string, 0, len(books)+5)
	rows = append(rows, styles.TitleStyle.Render(fmt.Sprintf("Catalog (%d books)", len(m.books))))

	if m.filter.Focused() || m.filter.Value() != "" {
		rows = append(rows, m.filter.View())
	}
	rows = append(rows, "")

	if len(books) == 0 {
		if len(m.books) == 0 {
			rows = append(rows, styles.DimStyle.Render("The catalog is empty."))
		} else {
			rows = append(rows, styles.DimStyle.Render("No titles match the filter."))
		}
	} else {
		rows = append(rows, styles.DimStyle.Render(bookHeader()))
		for i, b := range books {
			line := bookRow(b)
			if i == m.cursor && !m.filter.Focused() {
				rows = append(rows, styles.SelectedStyle.Render(line))
			} else {
				rows = append(rows, " "+styles.SubtitleStyle.Render(line))
			}
		}
	}

	rows = append(rows, styles.HelpStyle.Render("↑/↓: move • /: filter • esc: back"))
	return styles.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) resultsView() string {
	rows := make([]string, 0, len(m.results)+4)
	rows = append(rows, styles.TitleStyle.Render(m.resultsTitle), "")

	if len(m.results) == 0 {
		rows = append(rows, styles.DimStyle.Render("No books found."))
	} else {
		rows = append(rows, styles.DimStyle.Render(bookHeader()))
		for _, b := range m.results {
			rows = append(rows, " "+styles.SubtitleStyle.Render(bookRow(b)))
		}
	}

	rows = append(rows, styles.HelpStyle.Render("esc: back"))
	return styles.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) backupsView() string {
	rows := make([]string, 0, len(m.snapshots)+4)
	rows = append(rows, styles.TitleStyle.Render(fmt.Sprintf("Backups (%d retained)", len(m.snapshots))), "")

	if len(m.snapshots) == 0 {
		rows = append(rows, styles.DimStyle.Render("No backups yet."))
	} else {
		rows = append(rows, styles.DimStyle.Render(fmt.Sprintf("%-42s %10s  %s", "NAME", "SIZE", "CREATED")))
		for _, snap := range m.snapshots {
			line := fmt.Sprintf("%-42s %10s  %s",
				snap.Name(), formatSize(snap.Size), formatAge(snap.ModTime))
			rows = append(rows, " "+styles.SubtitleStyle.Render(line))
		}
	}

	rows = append(rows, styles.HelpStyle.Render("esc: back"))
	return styles.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func bookHeader() string {
	return fmt.Sprintf("%4s  %-32s %-24s %6s %12s", "ID", "TITLE", "AUTHOR", "YEAR", "PRICE")
}

func bookRow(b domain.Book) string {
	return fmt.Sprintf("%4d  %-32s %-24s %6d %12s",
		b.ID, truncate(b.Title, 32), truncate(b.Author, 24), b.Year, validate.FormatPrice(b.Price))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatAge(t time.Time) string {
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}
