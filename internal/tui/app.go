// Package tui implements the interactive terminal frontend: a menu of
// catalog actions, the book list, and the input forms. All catalog work is
// delegated to the service layer; a failed action surfaces in the status
// line and never terminates the program.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmartins/livraria/internal/backup"
	"github.com/mmartins/livraria/internal/domain"
	"github.com/mmartins/livraria/internal/service"
	"github.com/mmartins/livraria/internal/tui/styles"
	"github.com/mmartins/livraria/internal/validate"
)

type viewState int

const (
	viewMenu viewState = iota
	viewList
	viewResults
	viewAdd
	viewUpdate
	viewRemove
	viewSearch
	viewQuick
	viewExport
	viewImport
	viewBackups
)

type menuItem struct {
	label  string
	action func(*Model) tea.Cmd
}

var menuItems = []menuItem{
	{"Add new book", (*Model).startAdd},
	{"List all books", (*Model).startList},
	{"Update a price", (*Model).startUpdate},
	{"Remove a book", (*Model).startRemove},
	{"Search by author", (*Model).startSearch},
	{"Quick title search", (*Model).startQuick},
	{"Export catalog to CSV", (*Model).startExport},
	{"Import catalog from CSV", (*Model).startImport},
	{"Write sample import file", (*Model).startSample},
	{"Back up now", (*Model).startBackup},
	{"Show backups", (*Model).startBackups},
}

// Model is the root bubbletea model.
type Model struct {
	svc *service.Service

	state  viewState
	width  int
	height int

	menuCursor int

	// List view
	books    []domain.Book
	filter   textinput.Model
	filtered []int // indexes into books; nil when no filter text
	cursor   int

	// Search results view
	results      []domain.Book
	resultsTitle string

	// Backups view
	snapshots []backup.Snapshot

	form Form

	status    string
	statusErr bool
}

// NewModel creates the root TUI model.
func NewModel(svc *service.Service) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter titles"
	filter.CharLimit = 100
	filter.Width = 30

	return Model{svc: svc, filter: filter}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case ErrMsg:
		m.setStatus(msg.Error(), true)
		m.state = viewMenu
		return m, nil

	case BooksLoadedMsg:
		m.books = msg.Books
		m.cursor = 0
		m.filter.SetValue("")
		m.filter.Blur()
		m.filtered = nil
		m.state = viewList
		return m, nil

	case SearchResultsMsg:
		m.results = msg.Books
		m.resultsTitle = fmt.Sprintf("Books by authors matching %q", msg.Query)
		m.cursor = 0
		m.state = viewResults
		return m, nil

	case QuickSearchResultsMsg:
		m.results = msg.Books
		m.resultsTitle = fmt.Sprintf("Titles matching %q", msg.Query)
		m.cursor = 0
		m.state = viewResults
		return m, nil

	case BookAddedMsg:
		m.setStatus(fmt.Sprintf("Book %q added with ID %d", msg.Title, msg.ID), false)
		m.state = viewMenu
		return m, nil

	case PriceUpdatedMsg:
		if msg.OK {
			m.setStatus(fmt.Sprintf("Price of book %d updated to %s", msg.ID, validate.FormatPrice(msg.Price)), false)
		} else {
			m.setStatus(fmt.Sprintf("Book %d not found", msg.ID), true)
		}
		m.state = viewMenu
		return m, nil

	case BookRemovedMsg:
		if msg.OK {
			m.setStatus(fmt.Sprintf("Book %d removed", msg.ID), false)
		} else {
			m.setStatus(fmt.Sprintf("Book %d not found", msg.ID), true)
		}
		m.state = viewMenu
		return m, nil

	case ExportDoneMsg:
		m.setStatus(fmt.Sprintf("Exported %d books to %s", msg.Rows, msg.Path), false)
		m.state = viewMenu
		return m, nil

	case ImportDoneMsg:
		m.setStatus(fmt.Sprintf("Imported %d of %d parsed rows", msg.Result.Inserted, msg.Result.Parsed), false)
		m.state = viewMenu
		return m, nil

	case BackupDoneMsg:
		if msg.Path == "" {
			m.setStatus("No catalog file to back up yet", true)
		} else {
			m.setStatus("Backup created: "+msg.Path, false)
		}
		m.state = viewMenu
		return m, nil

	case SnapshotsLoadedMsg:
		m.snapshots = msg.Snapshots
		m.cursor = 0
		m.state = viewBackups
		return m, nil

	case SampleWrittenMsg:
		m.setStatus("Sample import file written: "+msg.Path, false)
		m.state = viewMenu
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case viewMenu:
		return m.updateMenu(msg)
	case viewList:
		return m.updateList(msg)
	case viewResults, viewBackups:
		if key := msg.String(); key == "esc" || key == "q" || key == "enter" {
			m.state = viewMenu
		}
		return m, nil
	default:
		return m.updateForm(msg)
	}
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case "enter":
		m.status = ""
		return m, menuItems[m.menuCursor].action(&m)
	default:
		// Digits jump straight to a menu entry.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(menuItems) {
				m.menuCursor = idx
				m.status = ""
				return m, menuItems[idx].action(&m)
			}
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filter.Focused() {
		switch msg.String() {
		case "enter":
			m.filter.Blur()
		case "esc":
			m.filter.SetValue("")
			m.filter.Blur()
			m.filtered = nil
			m.cursor = 0
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.state = viewMenu
	case "/":
		m.filter.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visibleBooks())-1 {
			m.cursor++
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// applyFilter recomputes the fuzzy-matched subset of books for the current
// filter text.
func (m *Model) applyFilter() {
	query := m.filter.Value()
	if query == "" {
		m.filtered = nil
		m.cursor = 0
		return
	}

	titles := make([]string, len(m.books))
	for i, b := range m.books {
		titles[i] = b.Title
	}

	matches := fuzzy.Find(query, titles)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
	m.cursor = 0
}

// visibleBooks returns the books the list view currently shows.
func (m Model) visibleBooks() []domain.Book {
	if m.filtered == nil {
		return m.books
	}
	out := make([]domain.Book, len(m.filtered))
	for i, idx := range m.filtered {
		out[i] = m.books[idx]
	}
	return out
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state = viewMenu
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	var submitted bool
	m.form, cmd, submitted = m.form.Update(msg)
	if !submitted {
		return m, cmd
	}
	return m.submitForm()
}

// submitForm validates the form of the current flow and dispatches the
// matching service command. Validation failures stay on the form.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case viewAdd:
		title, err := validate.Title(m.form.Value(0))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		author, err := validate.Author(m.form.Value(1))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		year, err := validate.Year(m.form.Value(2))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		price, err := validate.Price(m.form.Value(3))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, AddBookCmd(m.svc, title, author, year, price)

	case viewUpdate:
		id, err := validate.ID(m.form.Value(0))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		price, err := validate.Price(m.form.Value(1))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, UpdatePriceCmd(m.svc, id, price)

	case viewRemove:
		id, err := validate.ID(m.form.Value(0))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, RemoveBookCmd(m.svc, id)

	case viewSearch:
		query := m.form.Value(0)
		if query == "" {
			m.setStatus("author query must not be empty", true)
			return m, nil
		}
		return m, SearchAuthorCmd(m.svc, query)

	case viewQuick:
		query := m.form.Value(0)
		if query == "" {
			m.setStatus("title query must not be empty", true)
			return m, nil
		}
		return m, QuickSearchCmd(m.svc, query)

	case viewExport:
		name := m.form.Value(0)
		if name != "" {
			var err error
			if name, err = validate.Filename(name); err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
		}
		return m, ExportCmd(m.svc, name)

	case viewImport:
		name, err := validate.Filename(m.form.Value(0))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, ImportCmd(m.svc, name)
	}

	m.state = viewMenu
	return m, nil
}

// --- Menu actions ---

func (m *Model) startAdd() tea.Cmd {
	m.form = NewForm("Add new book", "Title", "Author", "Publication year", "Price")
	m.form.SetPlaceholder(3, "29.90")
	m.state = viewAdd
	return nil
}

func (m *Model) startList() tea.Cmd {
	return LoadBooksCmd(m.svc)
}

func (m *Model) startUpdate() tea.Cmd {
	m.form = NewForm("Update a price", "Book ID", "New price")
	m.state = viewUpdate
	return nil
}

func (m *Model) startRemove() tea.Cmd {
	m.form = NewForm("Remove a book", "Book ID")
	m.state = viewRemove
	return nil
}

func (m *Model) startSearch() tea.Cmd {
	m.form = NewForm("Search by author", "Author")
	m.state = viewSearch
	return nil
}

func (m *Model) startQuick() tea.Cmd {
	m.form = NewForm("Quick title search", "Title")
	m.state = viewQuick
	return nil
}

func (m *Model) startExport() tea.Cmd {
	m.form = NewForm("Export catalog to CSV", "Filename")
	m.form.SetPlaceholder(0, "blank for a timestamped name")
	m.state = viewExport
	return nil
}

func (m *Model) startImport() tea.Cmd {
	m.form = NewForm("Import catalog from CSV", "Filename")
	m.form.SetPlaceholder(0, "exemplo_importacao.csv")
	m.state = viewImport
	return nil
}

func (m *Model) startSample() tea.Cmd {
	return WriteSampleCmd(m.svc)
}

func (m *Model) startBackup() tea.Cmd {
	return BackupNowCmd(m.svc)
}

func (m *Model) startBackups() tea.Cmd {
	return LoadSnapshotsCmd(m.svc)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styles.ErrorStyle.Render("✗ " + m.status)
	}
	return styles.SuccessStyle.Render("✓ " + m.status)
}
