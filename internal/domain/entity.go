package domain

const (
	maxAddressLen     = 84 // physical width of the form's address box
	maxDisplayNameLen = 91 // physical width of the form's name box
	zipCodeDigits     = 4
)

// RawEntity is the untyped identity block shared by every payee row and the
// one payor record: values exactly as they came off the ledger cells.
type RawEntity struct {
	TIN            string
	OrgName        string
	LastName       string
	FirstName      string
	MidName        string
	Address        string
	ZipCode        string
	SignorName     string
	SignorPosition string
	SignorTIN      string
}

// RawRow is one 15-field ledger row: a payee identity block plus its tax line.
type RawRow struct {
	RawEntity
	Date           string
	ATCCode        string
	ATCDescription string
	Base           string
	Tax            string
}

// EntityRecord is a validated payor or payee identity. Construct with
// NewEntity, then attach signor fields with WithSignor; records are value
// types and never mutated after that.
type EntityRecord struct {
	TIN        TIN
	OrgName    string
	LastName   string
	FirstName  string
	MidName    string
	Address    string
	ZipCode    string
	SignorInfo string
	SignorTIN  string
}

// NewEntity validates the identity block of a row. A blank TIN returns
// ErrEndOfLedger — the ledger's fixed rows are followed by blank ones, and
// that is the scan's normal terminator, never a validation failure.
func NewEntity(raw RawEntity) (*EntityRecord, error) {
	tinValue := Trim(raw.TIN)
	if tinValue == "" {
		return nil, ErrEndOfLedger
	}

	tin, err := ParseTIN(tinValue)
	if err != nil {
		return nil, err
	}

	e := &EntityRecord{
		TIN:       tin,
		OrgName:   Upper(raw.OrgName),
		LastName:  Upper(raw.LastName),
		FirstName: Upper(raw.FirstName),
		MidName:   Upper(raw.MidName),
		Address:   Upper(raw.Address),
		ZipCode:   NumericString(raw.ZipCode),
	}

	if n := len(e.Address); n > maxAddressLen {
		return nil, validationErrorf(KindFieldLength, "Address", e.Address,
			"should be at most %d characters, not %d", maxAddressLen, n)
	}
	if e.ZipCode != "" && len(e.ZipCode) != zipCodeDigits {
		return nil, validationErrorf(KindFieldLength, "Zip Code", e.ZipCode,
			"should be exactly %d digits, not %d", zipCodeDigits, len(e.ZipCode))
	}

	if e.OrgName == "" {
		failing := "Last Name"
		if e.LastName != "" {
			failing = "First Name"
		}
		if e.LastName == "" || e.FirstName == "" {
			return nil, validationErrorf(KindRequiredEmpty, "Organization Name and "+failing, "",
				"an organization name or a complete last and first name is required")
		}
	}

	// The merged name is re-validated after concatenation: each part may fit
	// on its own, but the form's name box holds only maxDisplayNameLen.
	if name := e.DisplayName(); len(name) > maxDisplayNameLen {
		return nil, validationErrorf(KindFieldLength, "Entity Name", name,
			"should be at most %d characters, not %d", maxDisplayNameLen, len(name))
	}

	return e, nil
}

// WithSignor returns a copy of e with the signor fields populated.
// SignorInfo merges to "NAME - POSITION" when both are present; a non-empty
// signor TIN is validated in branch-optional form.
func (e *EntityRecord) WithSignor(name, position, tin string) (*EntityRecord, error) {
	signorTIN := Trim(tin)
	if signorTIN != "" {
		if _, err := ParseSignorTIN(signorTIN); err != nil {
			return nil, err
		}
	}

	out := *e
	out.SignorInfo = joinPair(Upper(name), " - ", Upper(position))
	out.SignorTIN = signorTIN
	return &out, nil
}

// IndividualName is "LAST, FIRST MID", degrading gracefully when parts are
// missing.
func (e *EntityRecord) IndividualName() string {
	return joinPair(e.LastName, ", ", joinPair(e.FirstName, " ", e.MidName))
}

// DisplayName is the name printed on the certificate: the organization name,
// the individual name, or "ORG - LAST, FIRST MID" when both exist.
func (e *EntityRecord) DisplayName() string {
	return joinPair(e.OrgName, " - ", e.IndividualName())
}

// RawName concatenates the unformatted name parts; file naming sanitizes
// this rather than the display form.
func (e *EntityRecord) RawName() string {
	return e.OrgName + e.LastName + e.FirstName + e.MidName
}
