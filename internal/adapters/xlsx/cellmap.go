// Package xlsx reads the withholding ledger workbook and fills the Form
// 2307 template through excelize. Field-to-cell mapping lives here; the
// domain only supplies validated records and derived values.
package xlsx

import "fmt"

// Ledger sheet layout: payee data occupies columns A-O starting at row 15,
// payor identity and the drop directory come from defined names.
var (
	payorNames = [10]string{
		"PAYOR_TIN", "PAYOR_ORG_NAME", "PAYOR_LAST_NAME", "PAYOR_FIRST_NAME",
		"PAYOR_MID_NAME", "PAYOR_ADDRESS", "PAYOR_ZIP_CODE",
		"SIGNOR_NAME", "SIGNOR_POSITION", "SIGNOR_TIN",
	}
	dropPathName = "DROP_PATH"
)

// Form 2307 template layout. The detail grid starts one row below
// gridBaseRow; the form holds exactly ten detail rows. Quarter columns O/T/Y
// carry the base amount under the 1st, 2nd, or 3rd month of the quarter.
const gridBaseRow = 37

var (
	quarterCols      = [3]string{"O", "T", "Y"}
	quarterTotalRefs = [3]string{"Total_1M", "Total_2M", "Total_3M"}
)

func descriptionCell(n int) string { return fmt.Sprintf("A%d", gridBaseRow+n) }
func codeCell(n int) string        { return fmt.Sprintf("L%d", gridBaseRow+n) }
func totalBaseCell(n int) string   { return fmt.Sprintf("AD%d", gridBaseRow+n) }
func totalTaxCell(n int) string    { return fmt.Sprintf("AI%d", gridBaseRow+n) }

func monthPeriodCell(quarterMonth, n int) string {
	return fmt.Sprintf("%s%d", quarterCols[quarterMonth-1], gridBaseRow+n)
}

func quarterTotalRef(quarterMonth int) string { return quarterTotalRefs[quarterMonth-1] }

// entityRefs names the template targets for one identity block; the payee
// and payor blocks share a shape and differ only in prefix.
type entityRefs struct {
	tinSegments [3]string
	branch      string
	name        string
	address     string
	zipCode     string
	signorInfo  string
	signorTIN   string
}

var payeeRefs = entityRefs{
	tinSegments: [3]string{"Payee_Tin_1", "Payee_Tin_2", "Payee_Tin_3"},
	branch:      "Payee_Branch",
	name:        "Payee_Name",
	address:     "Payee_Address",
	zipCode:     "Payee_Zip_Code",
	signorInfo:  "Signor_Payee_Info",
	signorTIN:   "Signor_Payee_Tin",
}

var payorRefs = entityRefs{
	tinSegments: [3]string{"Payor_Tin_1", "Payor_Tin_2", "Payor_Tin_3"},
	branch:      "Payor_Branch",
	name:        "Payor_Name",
	address:     "Payor_Address",
	zipCode:     "Payor_Zip_Code",
	signorInfo:  "Signor_Payor_Info",
	signorTIN:   "Signor_Payor_Tin",
}

// The template's entry boxes are comb fields: each digit sits in its own
// printed box, so values are written pre-spaced to land one character per
// box. The spacing below matches the template's box pitch exactly.

func doubleDigit(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func periodMMDD(month string, day int) string {
	m := doubleDigit(month)
	d := doubleDigit(fmt.Sprint(day))
	return fmt.Sprintf(" %c  %c   %c   %c", m[0], m[1], d[0], d[1])
}

func periodYYYY(year string) string {
	return fmt.Sprintf(" %c  %c   %c  %c", year[0], year[1], year[2], year[3])
}

func tinUnitBox(unit string) string {
	return fmt.Sprintf(" %c  %c   %c", unit[0], unit[1], unit[2])
}

func branchBox(unit string) string {
	return fmt.Sprintf("  %c   %c   %c   %c   %c", unit[0], unit[1], unit[2], unit[3], unit[4])
}

func zipBox(zip string) string {
	if len(zip) < 4 {
		return ""
	}
	return fmt.Sprintf(" %c  %c   %c  %c", zip[0], zip[1], zip[2], zip[3])
}
