package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var nonWord = regexp.MustCompile(`\W`)

// LastDay returns the last calendar day of a month under Gregorian
// leap-year rules.
func LastDay(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDay returns the final day of the certificate's reporting month, the
// "to" date of the return period.
func (c *Certificate) LastDay() int { return LastDay(c.Year, c.Month) }

// FileStem names the certificate's output document (extension is the
// writer's concern): year, month, TIN plus the payee's word-characters-only
// raw name, and the instance's sequence within its group.
func (c *Certificate) FileStem(sequence int) string {
	name := c.Payee.TIN.String() + "-" + nonWord.ReplaceAllString(c.Payee.RawName(), "")
	return fmt.Sprintf("%d_%d_%s_%d", c.Year, c.Month, name, sequence)
}

// FormatAmount renders a money value the way the form expects: fixed two
// decimal places, standard rounding.
func FormatAmount(d decimal.Decimal) string { return d.StringFixed(2) }
