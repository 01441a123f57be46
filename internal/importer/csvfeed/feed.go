// Package csvfeed reads completed-payment exports from the payment processor.
//
// The expected layout is one header row followed by data rows:
//
//	Date;Reference;Type;Amount;Status;Tithe;Offering;Description
//	2026-01-04;MPX81K2;TITHE;1,000.00;COMPLETED;welfare|stationFund;;Sabbath tithe
//
// Column order is free and matching is case-insensitive. Date, Type and Amount are
// required; the rest are optional. Commas are accepted as the separator when the header
// contains no semicolon.
package csvfeed

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/sanctuary/internal/encoding"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
)

const (
	colDate        = "date"
	colReference   = "reference"
	colType        = "type"
	colAmount      = "amount"
	colStatus      = "status"
	colTithe       = "tithe"
	colOffering    = "offering"
	colDescription = "description"
)

var requiredCols = []string{colDate, colType, colAmount}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse returns the payments in file order. Blank rows are skipped; any other malformed
// row fails the whole file with its line number.
func (p *Parser) Parse(r io.Reader) ([]*payment.Payment, error) {
	utf8r, _, err := encoding.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffSeparator(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, ledger.Invalid("file", "not a readable CSV: %v", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols := indexHeader(rows[0])
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return nil, ledger.Invalid("file", "missing %q column", name)
		}
	}

	var payments []*payment.Payment

	for i, row := range rows[1:] {
		line := i + 2

		if blank(row) {
			continue
		}

		pay, err := parseRow(cols, row)
		if err != nil {
			return nil, &ledger.ValidationError{Field: "file", Reason: fmt.Sprintf("line %d: %v", line, err), Err: err}
		}

		payments = append(payments, pay)
	}

	return payments, nil
}

// sniffSeparator peeks at the header line without consuming it.
func sniffSeparator(br *bufio.Reader) rune {
	head, _ := br.Peek(512)

	header, _, _ := strings.Cut(string(head), "\n")
	if !strings.Contains(header, ";") && strings.Contains(header, ",") {
		return ','
	}

	return ';'
}

type colIndex map[string]int

func indexHeader(row []string) colIndex {
	cols := make(colIndex, len(row))

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	return cols
}

func (c colIndex) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func parseRow(cols colIndex, row []string) (*payment.Payment, error) {
	paidAt, err := parseDate(cols.value(row, colDate))
	if err != nil {
		return nil, err
	}

	amount, err := ledger.ParseAmount(cols.value(row, colAmount))
	if err != nil {
		return nil, err
	}

	p := &payment.Payment{
		Amount:      amount,
		Type:        payment.Type(cols.value(row, colType)),
		Status:      payment.Status(cols.value(row, colStatus)),
		Reference:   cols.value(row, colReference),
		Description: cols.value(row, colDescription),
		PaidAt:      paidAt,
	}

	if p.Status == "" {
		p.Status = payment.StatusCompleted
	}

	if tithe := cols.value(row, colTithe); tithe != "" {
		p.TitheDistribution = parseTithe(tithe)
	}

	if code := cols.value(row, colOffering); code != "" {
		p.SpecialOffering = &payment.SpecialOffering{Code: code}
	}

	payment.Normalize(p)

	if err := payment.Validate(p); err != nil {
		return nil, err
	}

	return p, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseTithe reads a "|" or space separated list of category names. Unknown names are kept
// so validation can reject them.
func parseTithe(s string) payment.TitheDistribution {
	dist := payment.TitheDistribution{}

	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ' ' }) {
		dist[canonicalCategory(name)] = true
	}

	return dist
}

func canonicalCategory(name string) payment.TitheCategory {
	for _, c := range payment.TitheCategories {
		if strings.EqualFold(string(c), name) {
			return c
		}
	}

	return payment.TitheCategory(name)
}
