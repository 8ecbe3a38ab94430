package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateTimeframe
	txStateEdit
)

type TransactionsModel struct {
	CommonModel
	svc   *ledger.Service
	store *cache.Store

	state txState
	table table.Model
	txs   []model.Transaction

	timeframePicker TimeframePicker
	startDate       time.Time
	endDate         time.Time
	allTime         bool

	form    *huh.Form
	editing uuid.UUID

	// Form bindings
	formAmount   string
	formDate     string
	formDebited  string
	formCredited string
	formContact  string

	status string
}

func NewTransactionsModel(svc *ledger.Service, store *cache.Store) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Debited", Width: 22},
		{Title: "Credited", Width: 22},
		{Title: "Contact", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "✓", Width: 2},
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

	return TransactionsModel{
		svc:             svc,
		store:           store,
		table:           t,
		allTime:         true,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateEdit:
		return "Navigate form | Esc: cancel"
	case txStateTimeframe:
		return "Enter: select | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | space: toggle check | t: timeframe | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return func() tea.Msg { return txRefreshMsg{} }
}

type txRefreshMsg struct{}

type txSavedMsg struct {
	err error
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txRefreshMsg:
		m.refreshTable()
		return m, nil

	case txSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.state = txStateBrowse
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateTimeframe:
		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = txStateBrowse
			return m, nil
		}

		return m, cmd
	case txStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refreshTable()
			return m, nil
		case "t":
			m.state = txStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "n":
			return m.enterEditMode(model.Transaction{}, false)
		case "e":
			if t, ok := m.selectedTx(); ok {
				return m.enterEditMode(t, true)
			}

			return m, nil
		case "x":
			return m, m.deleteCmd()
		case " ":
			return m, m.toggleCheckCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) selectedTx() (model.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return model.Transaction{}, false
	}

	return m.txs[idx], true
}

func (m TransactionsModel) enterEditMode(t model.Transaction, existing bool) (tea.Model, tea.Cmd) {
	m.editing = uuid.Nil
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())
	m.formDebited = ""
	m.formCredited = ""
	m.formContact = ""

	if existing {
		m.editing = t.UUID
		m.formAmount = t.Amount.String()
		m.formDate = FormatDate(t.Date)
		m.formDebited = t.AccountDebitedUUID.String()
		m.formCredited = t.AccountCreditedUUID.String()

		if contact, ok := m.store.Contact(t.ContactUUID); ok {
			m.formContact = contact.Name
		}
	}

	accounts := m.store.Accounts()
	options := make([]huh.Option[string], 0, len(accounts))

	for _, a := range accounts {
		if !a.Enabled {
			continue
		}

		options = append(options, huh.NewOption(a.Name, a.UUID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("invalid date (YYYY-MM-DD)")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("debited").
				Title("Debited Account").
				Options(options...).
				Value(&m.formDebited),

			huh.NewSelect[string]().
				Key("credited").
				Title("Credited Account").
				Options(options...).
				Value(&m.formCredited),

			huh.NewInput().
				Key("contact").
				Title("Contact").
				Placeholder("optional").
				Value(&m.formContact),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	if err != nil {
		return func() tea.Msg { return txSavedMsg{err: err} }
	}

	date, err := time.Parse(time.DateOnly, m.formDate)
	if err != nil {
		return func() tea.Msg { return txSavedMsg{err: err} }
	}

	debited, err := uuid.Parse(m.formDebited)
	if err != nil {
		return func() tea.Msg { return txSavedMsg{err: err} }
	}

	credited, err := uuid.Parse(m.formCredited)
	if err != nil {
		return func() tea.Msg { return txSavedMsg{err: err} }
	}

	params := ledger.TransactionParams{
		Amount:          amount,
		Date:            date,
		AccountDebited:  debited,
		AccountCredited: credited,
		ContactName:     m.formContact,
	}

	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error

		if editing != uuid.Nil {
			_, err = m.svc.Edit(ctx, editing, params)
		} else {
			_, err = m.svc.Post(ctx, params)
		}

		return txSavedMsg{err: err}
	}
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	t, ok := m.selectedTx()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return txSavedMsg{err: m.svc.Delete(ctx, t.UUID)}
	}
}

func (m TransactionsModel) toggleCheckCmd() tea.Cmd {
	t, ok := m.selectedTx()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.svc.SetChecked(ctx, []uuid.UUID{t.UUID}, !t.Checked, time.Time{})

		return txSavedMsg{err: err}
	}
}

func (m *TransactionsModel) refreshTable() {
	if m.allTime {
		m.txs = m.store.Transactions()
	} else {
		m.txs = m.store.TransactionsByDateRange(m.startDate, m.endDate)
	}

	rows := make([]table.Row, 0, len(m.txs))

	for _, t := range m.txs {
		checked := ""
		if t.Checked {
			checked = "✓"
		}

		contactName := ""
		if contact, ok := m.store.Contact(t.ContactUUID); ok {
			contactName = contact.Name
		}

		rows = append(rows, table.Row{
			FormatDate(t.Date),
			m.accountName(t.AccountDebitedUUID),
			m.accountName(t.AccountCreditedUUID),
			contactName,
			FormatAmount(t.Amount),
			checked,
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) accountName(id uuid.UUID) string {
	if a, ok := m.store.Account(id); ok {
		return a.Name
	}

	return ""
}

func (m TransactionsModel) View() string {
	if m.state == txStateTimeframe {
		return lipgloss.NewStyle().Padding(2).Render(m.timeframePicker.View())
	}

	rangeLabel := "All Time"
	if !m.allTime {
		rangeLabel = fmt.Sprintf("%s .. %s", FormatDate(m.startDate), FormatDate(m.endDate))
	}

	header := fmt.Sprintf("Range: [t] %s", activeStyle(rangeLabel))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == txStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Transaction\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
