package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
)

type exportState int

const (
	exportStatePath exportState = iota
	exportStateResult
)

// ExportModel writes the complete record set to an XML file.
type ExportModel struct {
	CommonModel
	svc *importer.Service

	state exportState
	form  *huh.Form
	path  string

	summary string
	err     error
}

func NewExportModel(svc *importer.Service) ExportModel {
	return ExportModel{
		svc:  svc,
		path: fmt.Sprintf("records_%s.xml", time.Now().Format("20060102")),
	}
}

func (m ExportModel) Title() string { return "Export Records" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	m.form = m.buildPathForm()
	return m.form.Init()
}

func (m *ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output file").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(exportDoneMsg); ok {
		m.state = exportStateResult
		m.err = msg.err

		if msg.err == nil {
			m.summary = fmt.Sprintf("Records written to %s", msg.path)
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.state == exportStateResult {
		return m, nil
	}

	if m.form == nil {
		m.form = m.buildPathForm()
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.exportCmd()
}

func (m ExportModel) exportCmd() tea.Cmd {
	path := m.path

	return func() tea.Msg {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return exportDoneMsg{err: err}
			}
		}

		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()

		if err := m.svc.Export(f); err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path}
	}
}

func (m ExportModel) View() string {
	if m.state == exportStateResult {
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(m.summary)
	}

	if m.form == nil {
		return ""
	}

	return lipgloss.NewStyle().Padding(2).Render("Export Records\n\n" + m.form.View())
}
