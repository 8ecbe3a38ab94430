package statement

// Profile describes the column layout of one bank's CSV statement export.
// Supporting a new export format is just another entry in profiles.
type Profile struct {
	Name         string
	DateLayout   string
	ActualCol    string
	ExecutionCol string // empty when the format has a single date column
	DescCol      string
	CounterCol   string
	PlaceCol     string
	CountryCol   string
	AmountCol    string

	// Header hints: label cells whose right-hand neighbour carries the
	// account number and closing balance.
	AccountLabel string
	BalanceLabel string
}

// requiredCols returns the columns that must all be present for the
// profile to claim a header row.
func (p Profile) requiredCols() []string {
	cols := []string{p.ActualCol, p.DescCol, p.AmountCol}

	if p.ExecutionCol != "" {
		cols = append(cols, p.ExecutionCol)
	}

	return cols
}

// profiles is the ordered list of statement formats tried during
// auto-detection. More specific layouts come first.
var profiles = []Profile{
	{
		Name:         "card",
		DateLayout:   "02.01.2006",
		ActualCol:    "Operation date",
		ExecutionCol: "Processing date",
		DescCol:      "Details",
		CounterCol:   "Merchant",
		PlaceCol:     "City",
		CountryCol:   "Country",
		AmountCol:    "Amount",
		AccountLabel: "Card number",
		BalanceLabel: "Card balance",
	},
	{
		Name:         "account",
		DateLayout:   "02.01.2006",
		ActualCol:    "Date",
		DescCol:      "Description",
		AmountCol:    "Amount",
		AccountLabel: "Account",
		BalanceLabel: "Balance",
	},
}
