package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
	"github.com/petr-panteleyev/money-manager-sub002/internal/reconcile"
	"github.com/petr-panteleyev/money-manager-sub002/internal/statement"
)

type reviewState int

const (
	reviewStateAccount reviewState = iota
	reviewStateFilePick
	reviewStateReview
	reviewStateResult
)

// ReviewModel walks through statement reconciliation: choose an account,
// pick a statement file, review the matches and confirm them.
type ReviewModel struct {
	CommonModel
	svc    *reconcile.Service
	ledger *ledger.Service
	store  *cache.Store
	parser *statement.Parser

	state      reviewState
	form       *huh.Form
	filePicker filepicker.Model
	table      table.Model

	accountID string
	account   model.Account
	stmt      *statement.Statement
	matches   []reconcile.Match
	selected  map[int]bool

	ignoreExecutionDate bool

	status string
	err    error
}

func NewReviewModel(svc *reconcile.Service, ledgerSvc *ledger.Service, store *cache.Store) ReviewModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 35},
		{Title: "Amount", Width: 12},
		{Title: "Matched", Width: 10},
		{Title: "Confirm", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ReviewModel{
		svc:        svc,
		ledger:     ledgerSvc,
		store:      store,
		parser:     statement.NewParser(),
		filePicker: fp,
		table:      t,
		selected:   make(map[int]bool),
	}
}

func (m ReviewModel) Title() string { return "Reconcile Statement" }

func (m ReviewModel) ShortHelp() string {
	switch m.state {
	case reviewStateReview:
		return "Space: toggle | a: all matched | Enter: confirm | Esc: cancel"
	case reviewStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select"
}

func (m ReviewModel) Init() tea.Cmd {
	m.form = m.buildAccountForm()
	return m.form.Init()
}

func (m *ReviewModel) buildAccountForm() *huh.Form {
	accounts := m.store.Accounts()
	options := make([]huh.Option[string], 0, len(accounts))

	for _, a := range accounts {
		if !a.Enabled {
			continue
		}

		options = append(options, huh.NewOption(a.Name, a.UUID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(options...).
				Value(&m.accountID),

			huh.NewConfirm().
				Key("ignore_execution").
				Title("Match on operation date only?").
				Value(&m.ignoreExecutionDate),
		),
	).WithWidth(45).WithShowHelp(false)
}

type statementParsedMsg struct {
	stmt *statement.Statement
	err  error
}

type reviewConfirmedMsg struct {
	count int
	err   error
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statementParsedMsg:
		if msg.err != nil {
			m.state = reviewStateResult
			m.err = msg.err

			return m, nil
		}

		m.stmt = msg.stmt
		m.matches = m.svc.MatchStatement(m.account, m.stmt, m.ignoreExecutionDate)
		m.selected = make(map[int]bool)

		// Unambiguous matches start out confirmed.
		for i, match := range m.matches {
			if len(match.Transactions) == 1 {
				m.selected[i] = true
			}
		}

		m.state = reviewStateReview
		m.refreshTable()

		return m, nil

	case reviewConfirmedMsg:
		m.state = reviewStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Reconciled %d transactions.", msg.count)
		}

		return m, nil
	}

	switch m.state {
	case reviewStateAccount:
		return m.updateAccount(msg)
	case reviewStateFilePick:
		return m.updateFilePick(msg)
	case reviewStateReview:
		return m.updateReview(msg)
	case reviewStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ReviewModel) updateAccount(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.form = m.buildAccountForm()
		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	id, err := uuid.Parse(m.accountID)
	if err != nil {
		m.err = err
		m.state = reviewStateResult

		return m, nil
	}

	account, ok := m.store.Account(id)
	if !ok {
		m.err = fmt.Errorf("account not found")
		m.state = reviewStateResult

		return m, nil
	}

	m.account = account
	m.state = reviewStateFilePick

	return m, m.filePicker.Init()
}

func (m ReviewModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ReviewModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return statementParsedMsg{err: err}
		}
		defer f.Close()

		stmt, err := m.parser.Parse(f)

		return statementParsedMsg{stmt: stmt, err: err}
	}
}

func (m ReviewModel) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case " ":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.matches) && len(m.matches[idx].Transactions) > 0 {
				m.selected[idx] = !m.selected[idx]
				m.refreshTable()
			}

			return m, nil
		case "a":
			for i, match := range m.matches {
				if len(match.Transactions) > 0 {
					m.selected[i] = true
				}
			}

			m.refreshTable()

			return m, nil
		case "enter":
			return m, m.confirmCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReviewModel) confirmCmd() tea.Cmd {
	var (
		count int
		work  []func() error
	)

	for i, match := range m.matches {
		if !m.selected[i] || len(match.Transactions) == 0 {
			continue
		}

		// Ambiguous matches confirm the first candidate; the review table
		// is the place to deselect them.
		ids := []uuid.UUID{match.Transactions[0].UUID}
		date := match.Record.Actual
		count += len(ids)

		work = append(work, func() error {
			ctx, cancel := DbCtx()
			defer cancel()

			return m.ledger.SetChecked(ctx, ids, true, date)
		})
	}

	return func() tea.Msg {
		for _, fn := range work {
			if err := fn(); err != nil {
				return reviewConfirmedMsg{err: err}
			}
		}

		return reviewConfirmedMsg{count: count}
	}
}

func (m *ReviewModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.matches))

	for i, match := range m.matches {
		matched := fmt.Sprintf("%d", len(match.Transactions))

		confirm := ""
		if m.selected[i] {
			confirm = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(match.Record.Actual),
			match.Record.Description,
			FormatAmount(match.Record.Amount),
			matched,
			confirm,
		})
	}

	m.table.SetRows(rows)
}

func (m ReviewModel) View() string {
	switch m.state {
	case reviewStateAccount:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(2).Render("Reconcile Statement\n\n" + m.form.View())

	case reviewStateFilePick:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Select statement file for %s:\n\n%s", m.account.Name, m.filePicker.View()),
		)

	case reviewStateReview:
		header := fmt.Sprintf("Statement for %s", activeStyle(m.account.Name))
		if m.stmt != nil && m.stmt.AccountNumber != "" {
			header += fmt.Sprintf(" (%s)", m.stmt.AccountNumber)
		}

		tableView := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().PaddingBottom(1).Render(header),
				tableView,
			),
		)

	case reviewStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status)
	}

	return ""
}
