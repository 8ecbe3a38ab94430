// Package xmldoc implements the XML export/import format: a single
// document carrying sibling groups for icons, categories, currencies,
// contacts, accounts and transactions. All six groups are always present,
// even when empty, and UUIDs must be unique within each group.
package xmldoc

import (
	"encoding/xml"
)

// Document is the root element of an export file.
type Document struct {
	XMLName      xml.Name     `xml:"MoneyRecords"`
	Icons        Icons        `xml:"Icons"`
	Categories   Categories   `xml:"Categories"`
	Currencies   Currencies   `xml:"Currencies"`
	Contacts     Contacts     `xml:"Contacts"`
	Accounts     Accounts     `xml:"Accounts"`
	Transactions Transactions `xml:"Transactions"`
}

type Icons struct {
	Icons []Icon `xml:"Icon"`
}

type Categories struct {
	Categories []Category `xml:"Category"`
}

type Currencies struct {
	Currencies []Currency `xml:"Currency"`
}

type Contacts struct {
	Contacts []Contact `xml:"Contact"`
}

type Accounts struct {
	Accounts []Account `xml:"Account"`
}

type Transactions struct {
	Transactions []Transaction `xml:"Transaction"`
}

// Icon bytes travel base64-encoded in the Bytes element.
type Icon struct {
	UUID     string `xml:"uuid,attr"`
	Name     string `xml:"name"`
	Bytes    string `xml:"bytes"`
	Created  int64  `xml:"created"`
	Modified int64  `xml:"modified"`
}

type Category struct {
	UUID     string `xml:"uuid,attr"`
	Name     string `xml:"name"`
	Comment  string `xml:"comment,omitempty"`
	Type     string `xml:"type"`
	IconUUID string `xml:"iconUuid,omitempty"`
	Created  int64  `xml:"created"`
	Modified int64  `xml:"modified"`
}

type Currency struct {
	UUID         string `xml:"uuid,attr"`
	Symbol       string `xml:"symbol"`
	Description  string `xml:"description,omitempty"`
	FormatSymbol string `xml:"formatSymbol,omitempty"`
	SymbolBefore bool   `xml:"symbolBefore"`
	ShowSymbol   bool   `xml:"showSymbol"`
	ThousandSep  bool   `xml:"thousandSeparator"`
	Default      bool   `xml:"default"`
	Rate         string `xml:"rate"`
	Direction    int    `xml:"direction"`
	Created      int64  `xml:"created"`
	Modified     int64  `xml:"modified"`
}

type Contact struct {
	UUID     string `xml:"uuid,attr"`
	Name     string `xml:"name"`
	Type     string `xml:"type"`
	Phone    string `xml:"phone,omitempty"`
	Mobile   string `xml:"mobile,omitempty"`
	Email    string `xml:"email,omitempty"`
	Web      string `xml:"web,omitempty"`
	Comment  string `xml:"comment,omitempty"`
	Street   string `xml:"street,omitempty"`
	City     string `xml:"city,omitempty"`
	Country  string `xml:"country,omitempty"`
	Zip      string `xml:"zip,omitempty"`
	IconUUID string `xml:"iconUuid,omitempty"`
	Created  int64  `xml:"created"`
	Modified int64  `xml:"modified"`
}

type Account struct {
	UUID           string `xml:"uuid,attr"`
	Name           string `xml:"name"`
	Comment        string `xml:"comment,omitempty"`
	AccountNumber  string `xml:"accountNumber,omitempty"`
	OpeningBalance string `xml:"openingBalance"`
	AccountLimit   string `xml:"accountLimit"`
	Type           string `xml:"type"`
	CategoryUUID   string `xml:"categoryUuid"`
	CurrencyUUID   string `xml:"currencyUuid"`
	IconUUID       string `xml:"iconUuid,omitempty"`
	Enabled        bool   `xml:"enabled"`
	Total          string `xml:"total"`
	Created        int64  `xml:"created"`
	Modified       int64  `xml:"modified"`
}

type Transaction struct {
	UUID                        string `xml:"uuid,attr"`
	Amount                      string `xml:"amount"`
	Date                        string `xml:"date"`
	AccountDebitedUUID          string `xml:"accountDebitedUuid"`
	AccountCreditedUUID         string `xml:"accountCreditedUuid"`
	AccountDebitedType          string `xml:"accountDebitedType"`
	AccountCreditedType         string `xml:"accountCreditedType"`
	AccountDebitedCategoryUUID  string `xml:"accountDebitedCategoryUuid,omitempty"`
	AccountCreditedCategoryUUID string `xml:"accountCreditedCategoryUuid,omitempty"`
	ContactUUID                 string `xml:"contactUuid,omitempty"`
	Rate                        string `xml:"rate"`
	RateDirection               int    `xml:"rateDirection"`
	InvoiceNumber               string `xml:"invoiceNumber,omitempty"`
	Checked                     bool   `xml:"checked"`
	ParentUUID                  string `xml:"parentUuid,omitempty"`
	Detailed                    bool   `xml:"detailed"`
	StatementDate               string `xml:"statementDate,omitempty"`
	Created                     int64  `xml:"created"`
	Modified                    int64  `xml:"modified"`
}
