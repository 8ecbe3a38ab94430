package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/petr-panteleyev/money-manager-sub002/internal/balance"
	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

type balanceMode int

const (
	balanceModeTotal balanceMode = iota
	balanceModeUnchecked
	balanceModeTurnover
)

func (b balanceMode) String() string {
	switch b {
	case balanceModeTotal:
		return "Total"
	case balanceModeUnchecked:
		return "Waiting"
	case balanceModeTurnover:
		return "Turnover"
	}

	return "Unknown"
}

type AccountsModel struct {
	CommonModel
	svc   *ledger.Service
	store *cache.Store
	calc  *balance.Calculator

	table        table.Model
	accounts     []model.Account
	showDisabled bool
	mode         balanceMode

	status string
}

func NewAccountsModel(svc *ledger.Service, store *cache.Store) AccountsModel {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Category", Width: 20},
		{Title: "Type", Width: 15},
		{Title: "Number", Width: 20},
		{Title: "Balance", Width: 15},
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

	return AccountsModel{
		svc:   svc,
		store: store,
		calc:  balance.New(store),
		table: t,
	}
}

func (m AccountsModel) Title() string { return "Accounts" }

func (m AccountsModel) ShortHelp() string {
	return "Esc: back | b: balance mode | h: show/hide closed | c: close account | r: refresh"
}

func (m AccountsModel) Init() tea.Cmd {
	return func() tea.Msg { return accountsRefreshMsg{} }
}

type accountsRefreshMsg struct{}

type accountClosedMsg struct {
	err error
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsRefreshMsg:
		m.refreshTable()
		return m, nil

	case accountClosedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Account closed."
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refreshTable()
			return m, nil
		case "b":
			m.mode = (m.mode + 1) % 3
			m.refreshTable()

			return m, nil
		case "h":
			m.showDisabled = !m.showDisabled
			m.refreshTable()

			return m, nil
		case "c":
			return m, m.closeCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *AccountsModel) refreshTable() {
	m.accounts = m.accounts[:0]

	for _, a := range m.store.Accounts() {
		if !a.Enabled && !m.showDisabled {
			continue
		}

		m.accounts = append(m.accounts, a)
	}

	rows := make([]table.Row, 0, len(m.accounts))

	for _, a := range m.accounts {
		rows = append(rows, table.Row{
			a.Name,
			m.store.AccountCategoryName(a),
			string(a.Type),
			a.AccountNumber,
			m.formatBalance(a),
		})
	}

	m.table.SetRows(rows)
}

func (m AccountsModel) formatBalance(a model.Account) string {
	var amount = a.Total

	switch m.mode {
	case balanceModeUnchecked:
		amount = m.calc.Calculate(a, true, balance.UncheckedOnly)
	case balanceModeTurnover:
		amount = m.calc.Calculate(a, false, balance.Any)
	}

	if c, ok := m.store.Currency(a.CurrencyUUID); ok {
		return FormatMoney(amount, c)
	}

	return FormatAmount(amount)
}

func (m AccountsModel) closeCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return nil
	}

	id := m.accounts[idx].UUID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.CloseAccount(ctx, id)

		return accountClosedMsg{err: err}
	}
}

func (m AccountsModel) View() string {
	header := fmt.Sprintf("Balance: [b] %s", activeStyle(m.mode.String()))
	if m.showDisabled {
		header += "  (showing closed accounts)"
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
