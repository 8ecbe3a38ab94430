package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/petr-panteleyev/money-manager-sub002/cmd/tui/internal/view"
	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/config"
	"github.com/petr-panteleyev/money-manager-sub002/internal/database"
	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/reconcile"
	"github.com/petr-panteleyev/money-manager-sub002/internal/store"
)

type model struct {
	ledgerService *ledger.Service
	importService *importer.Service
	reconcileSvc  *reconcile.Service
	records       *cache.Store

	currentView View

	accountsView     view.AccountsModel
	transactionsView view.TransactionsModel
	reviewView       view.ReviewModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewAccounts     View = 1
	ViewTransactions View = 2
	ViewReview       View = 3
	ViewImport       View = 4
	ViewExport       View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	records := cache.New()
	repo := store.New(db)
	ledgerSvc := ledger.NewService(repo, records)
	impSvc := importer.NewService(repo, records)
	reconcileSvc := reconcile.NewService(records)

	if err := impSvc.Preload(context.Background()); err != nil {
		slog.Error("failed to preload records", "error", err)
		os.Exit(1)
	}

	return model{
		ledgerService:    ledgerSvc,
		importService:    impSvc,
		reconcileSvc:     reconcileSvc,
		records:          records,
		currentView:      ViewMenu,
		accountsView:     view.NewAccountsModel(ledgerSvc, records),
		transactionsView: view.NewTransactionsModel(ledgerSvc, records),
		reviewView:       view.NewReviewModel(reconcileSvc, ledgerSvc, records),
		importView:       view.NewImportModel(impSvc),
		exportView:       view.NewExportModel(impSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAccounts
				m.accountsView = view.NewAccountsModel(m.ledgerService, m.records)

				return m, m.accountsView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledgerService, m.records)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.reconcileSvc, m.ledgerService, m.records)

				return m, m.reviewView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.importService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Money Manager\n\n" +
				"1. Accounts\n" +
				"2. Transactions\n" +
				"3. Reconcile Statement\n" +
				"4. Import Records\n" +
				"5. Export Records\n\n" +
				"q. Quit",
		)
	case ViewAccounts:
		return m.accountsView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewReview:
		return m.reviewView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
