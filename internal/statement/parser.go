package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/petr-panteleyev/money-manager-sub002/internal/encoding"
)

// Parser reads semicolon-separated bank statement exports. The concrete
// format is auto-detected by matching column headers against known
// profiles; rows above the header may carry account number and balance
// hints.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) (*Statement, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no known statement format matched the file header")
	}

	stmt := &Statement{}
	scanHints(profile, rows[:headerIdx], stmt)

	records, err := parseRows(profile, cols, rows[headerIdx+1:])
	if err != nil {
		return nil, err
	}

	stmt.Records = records

	return stmt, nil
}

// detectProfile scans rows for a header matching a known profile and
// returns the profile, its column index map and the header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// scanHints pulls the account number and closing balance out of the
// label/value rows preceding the header.
func scanHints(p *Profile, rows [][]string, stmt *Statement) {
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		label := strings.TrimSpace(row[0])
		value := strings.TrimSpace(row[1])

		switch label {
		case p.AccountLabel:
			stmt.AccountNumber = value
		case p.BalanceLabel:
			if amount, err := parseAmount(value); err == nil {
				stmt.Balance = amount
			}
		}
	}
}

func parseRows(p *Profile, cols colIndex, rows [][]string) ([]Record, error) {
	var records []Record

	for _, row := range rows {
		actual, ok := parseDate(p.DateLayout, cellValue(row, cols[p.ActualCol]))
		if !ok {
			// Footer or summary row.
			continue
		}

		execution := actual
		if p.ExecutionCol != "" {
			if d, ok := parseDate(p.DateLayout, cellValue(row, cols[p.ExecutionCol])); ok {
				execution = d
			}
		}

		amountStr := cellValue(row, cols[p.AmountCol])
		if amountStr == "" {
			continue
		}

		amount, err := parseAmount(amountStr)
		if err != nil {
			continue
		}

		records = append(records, Record{
			Actual:       actual,
			Execution:    execution,
			Description:  cellValue(row, cols[p.DescCol]),
			Counterparty: cellWhen(row, cols, p.CounterCol),
			Place:        cellWhen(row, cols, p.PlaceCol),
			Country:      cellWhen(row, cols, p.CountryCol),
			Amount:       amount,
		})
	}

	return records, nil
}

func parseDate(layout, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// cellWhen reads an optional column that may be absent from the profile.
func cellWhen(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}
