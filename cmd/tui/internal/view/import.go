package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateModeSelect
	importStateImporting
	importStateResult
)

type importMode int

const (
	importModeMerge importMode = iota
	importModeReplace
)

func (m importMode) String() string {
	switch m {
	case importModeMerge:
		return "Merge with existing records"
	case importModeReplace:
		return "Replace everything (full dump)"
	}

	return "Unknown"
}

// ImportModel loads an XML record file, either merging it into the
// current record set or replacing the record set wholesale.
type ImportModel struct {
	CommonModel
	svc *importer.Service

	state      importState
	filePicker filepicker.Model
	mode       importMode
	path       string

	status string
	err    error
}

func NewImportModel(svc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:        svc,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Records" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateResult:
		return "Esc: back to menu"
	case importStateImporting:
		return "Importing..."
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type importDoneMsg struct {
	summary importer.Summary
	full    bool
	err     error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err == nil {
			if msg.full {
				m.status = "Record set replaced."
			} else {
				m.status = fmt.Sprintf("Imported: %d new, %d updated, %d unchanged.",
					msg.summary.Inserted, msg.summary.Updated, msg.summary.Ignored)
			}
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == importStateModeSelect {
			return m.updateModeSelect(msg)
		}
	}

	if m.state == importStateFilePick {
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			m.state = importStateModeSelect
			m.mode = importModeMerge
			m.path = path

			return m, nil
		}

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) updateModeSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down":
		m.mode = (m.mode + 1) % 2
		return m, nil
	case "enter":
		m.state = importStateImporting
		return m, m.importCmd()
	}

	return m, nil
}

func (m ImportModel) importCmd() tea.Cmd {
	path := m.path
	full := m.mode == importModeReplace

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := DbCtx()
		defer cancel()

		if full {
			return importDoneMsg{full: true, err: m.svc.ImportFullDump(ctx, f)}
		}

		summary, err := m.svc.ImportRecords(ctx, f)

		return importDoneMsg{summary: summary, err: err}
	}
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(2).Render(
			"Select record file:\n\n" + m.filePicker.View(),
		)

	case importStateModeSelect:
		s := "Import mode:\n\n"

		for _, mode := range []importMode{importModeMerge, importModeReplace} {
			cursor := " "
			if m.mode == mode {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s\n", cursor, mode.String())
		}

		s += "\n(Enter to import, Esc to back)"

		return lipgloss.NewStyle().Padding(2).Render(s)

	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render("Importing records...")

	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status)
	}

	return ""
}
