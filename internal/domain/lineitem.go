package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one validated withholding tax event: an ATC code with its
// base and tax amounts inside one reporting month.
type LineItem struct {
	ATCCode        string
	ATCDescription string
	Month          int
	Year           int
	Base           decimal.Decimal
	Tax            decimal.Decimal
}

// NewLineItem validates one tax line. The date cell must carry a real date
// (type mismatch otherwise); code and description must be non-empty after
// trimming and base/tax strictly positive. All failing amount and text
// fields are reported together in one error.
func NewLineItem(atcCode, atcDescription, date, base, tax string) (*LineItem, error) {
	when, err := parseCellDate(date)
	if err != nil {
		return nil, err
	}

	li := &LineItem{
		ATCCode:        Upper(atcCode),
		ATCDescription: Trim(atcDescription),
		Month:          int(when.Month()),
		Year:           when.Year(),
	}

	var issues []*ValidationError

	if li.ATCCode == "" {
		issues = append(issues, validationErrorf(KindRequiredEmpty, "ATC Code", atcCode, "invalid string"))
	}
	if li.ATCDescription == "" {
		issues = append(issues, validationErrorf(KindRequiredEmpty, "ATC Description", "", "invalid string"))
	}
	li.Base, issues = parseAmount("Tax Base", base, issues)
	li.Tax, issues = parseAmount("Tax Amount", tax, issues)

	if len(issues) > 0 {
		return nil, combineIssues(issues)
	}
	return li, nil
}

func parseAmount(field, raw string, issues []*ValidationError) (decimal.Decimal, []*ValidationError) {
	s := strings.ReplaceAll(Trim(raw), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, append(issues,
			validationErrorf(KindNonPositiveAmount, field, raw, "invalid number"))
	}
	return d, issues
}

func combineIssues(issues []*ValidationError) *ValidationError {
	if len(issues) == 1 {
		return issues[0]
	}
	fields := make([]string, len(issues))
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		fields[i] = issue.Field
		msgs[i] = issue.Error()
	}
	return &ValidationError{
		Kind:  issues[0].Kind,
		Field: strings.Join(fields, " and "),
		Msg:   strings.Join(msgs, "; "),
	}
}

// cellDateLayouts covers the date renderings excelize produces depending on
// the cell's number format, plus ISO forms from the SQLite export.
var cellDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1-2-06",
	"Jan 2, 2006",
	"2-Jan-06",
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func parseCellDate(raw string) (time.Time, error) {
	s := Trim(raw)
	if s == "" {
		return time.Time{}, validationErrorf(KindTypeMismatch, "Date", raw,
			"a date value is required")
	}
	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Unformatted date cells surface as their raw serial number.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, validationErrorf(KindTypeMismatch, "Date", raw,
		"should be a date, not a plain string")
}
