package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Write serializes the document with a standard XML header and two-space
// indentation.
func Write(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	return enc.Close()
}

// groupPresence mirrors the document's group elements as pointers so a
// missing group is distinguishable from an empty one.
type groupPresence struct {
	XMLName      xml.Name  `xml:"MoneyRecords"`
	Icons        *struct{} `xml:"Icons"`
	Categories   *struct{} `xml:"Categories"`
	Currencies   *struct{} `xml:"Currencies"`
	Contacts     *struct{} `xml:"Contacts"`
	Accounts     *struct{} `xml:"Accounts"`
	Transactions *struct{} `xml:"Transactions"`
}

// Read parses and validates an export document. Validation failures are
// reported before any caller-visible state changes, so a bad file never
// partially applies.
func Read(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read records: %w", err)
	}

	var doc Document
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("decode records: %w", err)
	}

	var presence groupPresence
	if err := xml.Unmarshal(raw, &presence); err != nil {
		return Document{}, fmt.Errorf("decode records: %w", err)
	}

	if err := checkGroups(presence); err != nil {
		return Document{}, err
	}

	if err := Validate(doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

func checkGroups(p groupPresence) error {
	groups := []struct {
		name    string
		present bool
	}{
		{"Icons", p.Icons != nil},
		{"Categories", p.Categories != nil},
		{"Currencies", p.Currencies != nil},
		{"Contacts", p.Contacts != nil},
		{"Accounts", p.Accounts != nil},
		{"Transactions", p.Transactions != nil},
	}

	for _, g := range groups {
		if !g.present {
			return fmt.Errorf("missing record group %s", g.name)
		}
	}

	return nil
}
