package statement_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petr-panteleyev/money-manager-sub002/internal/statement"
)

const cardStatement = `Card number;1234 **** 5678
Card balance;1 234,56
;
Operation date;Processing date;Details;Merchant;City;Country;Amount
01.06.2024;03.06.2024;Purchase;Grocer Ltd;Lisbon;PT;-25,50
05.06.2024;05.06.2024;Refund;Grocer Ltd;Lisbon;PT;10,00
Total;;;;;;-15,50
`

const accountStatement = `Account;PT50 0000 0000 0000 0000 0001
Balance;-200.00
Date;Description;Amount
10.06.2024;Salary;1.234,56
11.06.2024;Rent;-800,00
`

func TestParser_CardProfile(t *testing.T) {
	stmt, err := statement.NewParser().Parse(strings.NewReader(cardStatement))
	require.NoError(t, err)

	assert.Equal(t, "1234 **** 5678", stmt.AccountNumber)
	assert.Equal(t, "1234.56", stmt.Balance.String())

	require.Len(t, stmt.Records, 2)

	first := stmt.Records[0]
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), first.Actual)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), first.Execution)
	assert.Equal(t, "Purchase", first.Description)
	assert.Equal(t, "Grocer Ltd", first.Counterparty)
	assert.Equal(t, "Lisbon", first.Place)
	assert.Equal(t, "PT", first.Country)
	assert.Equal(t, "-25.5", first.Amount.String())
}

func TestParser_AccountProfile(t *testing.T) {
	stmt, err := statement.NewParser().Parse(strings.NewReader(accountStatement))
	require.NoError(t, err)

	assert.Equal(t, "PT50 0000 0000 0000 0000 0001", stmt.AccountNumber)
	assert.Equal(t, "-200", stmt.Balance.String())

	require.Len(t, stmt.Records, 2)

	salary := stmt.Records[0]
	assert.Equal(t, "1234.56", salary.Amount.String())
	// Single-date formats use the operation date for both.
	assert.Equal(t, salary.Actual, salary.Execution)
	assert.Empty(t, salary.Counterparty)
}

func TestParser_FooterRowSkipped(t *testing.T) {
	stmt, err := statement.NewParser().Parse(strings.NewReader(cardStatement))
	require.NoError(t, err)

	for _, rec := range stmt.Records {
		assert.NotEqual(t, "Total", rec.Description)
	}
}

func TestParser_UnknownFormat(t *testing.T) {
	in := "Foo;Bar\n1;2\n"

	_, err := statement.NewParser().Parse(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no known statement format")
}

func TestParser_EmptyAmountRowSkipped(t *testing.T) {
	in := "Date;Description;Amount\n10.06.2024;Pending;\n11.06.2024;Done;-1,00\n"

	stmt, err := statement.NewParser().Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, stmt.Records, 1)
	assert.Equal(t, "Done", stmt.Records[0].Description)
}
