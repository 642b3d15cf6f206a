package domain

import (
	"errors"
	"strings"
	"testing"
)

func validRawEntity() RawEntity {
	return RawEntity{
		TIN:       "123-456-789-00001",
		OrgName:   "Acme Corp",
		LastName:  "doe",
		FirstName: "john",
		MidName:   "q",
		Address:   "1 Main St, Springfield",
		ZipCode:   "1605.0",
	}
}

func TestNewEntity_EmptyTINIsSentinel(t *testing.T) {
	// A blank TIN is end-of-ledger regardless of how broken the rest of the
	// row is; it must never surface as a ValidationError.
	raw := RawEntity{TIN: "   ", Address: strings.Repeat("X", 200), ZipCode: "12"}
	_, err := NewEntity(raw)
	if !errors.Is(err, ErrEndOfLedger) {
		t.Fatalf("got %v, want ErrEndOfLedger", err)
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatal("sentinel must not be a ValidationError")
	}
}

func TestNewEntity_Valid(t *testing.T) {
	e, err := NewEntity(validRawEntity())
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	if e.OrgName != "ACME CORP" || e.LastName != "DOE" {
		t.Errorf("names not upper-cased: %q %q", e.OrgName, e.LastName)
	}
	if e.ZipCode != "1605" {
		t.Errorf("ZipCode = %q, want %q (coerced from the float cell)", e.ZipCode, "1605")
	}
}

func TestNewEntity_ZipCode(t *testing.T) {
	raw := validRawEntity()

	raw.ZipCode = "1605"
	if _, err := NewEntity(raw); err != nil {
		t.Errorf("4-digit zip should pass: %v", err)
	}

	raw.ZipCode = ""
	if _, err := NewEntity(raw); err != nil {
		t.Errorf("empty zip should pass: %v", err)
	}

	raw.ZipCode = "160"
	if _, err := NewEntity(raw); !isKind(err, KindFieldLength) {
		t.Errorf("3-digit zip: got %v, want field-length error", err)
	}
}

func TestNewEntity_AddressTooLong(t *testing.T) {
	raw := validRawEntity()
	raw.Address = strings.Repeat("A", 85)
	if _, err := NewEntity(raw); !isKind(err, KindFieldLength) {
		t.Errorf("got %v, want field-length error", err)
	}

	raw.Address = strings.Repeat("A", 84)
	if _, err := NewEntity(raw); err != nil {
		t.Errorf("84-char address should pass: %v", err)
	}
}

func TestNewEntity_IdentityRequired(t *testing.T) {
	cases := []struct {
		name            string
		org, last, first string
		wantErr         bool
	}{
		{"org only", "ACME", "", "", false},
		{"individual only", "", "DOE", "JOHN", false},
		{"both", "ACME", "DOE", "JOHN", false},
		{"nothing", "", "", "", true},
		{"last without first", "", "DOE", "", true},
		{"first without last", "", "", "JOHN", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRawEntity()
			raw.OrgName, raw.LastName, raw.FirstName, raw.MidName = tc.org, tc.last, tc.first, ""
			_, err := NewEntity(raw)
			if tc.wantErr && !isKind(err, KindRequiredEmpty) {
				t.Errorf("got %v, want required-empty error", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewEntity_IdentityErrorNamesBothFields(t *testing.T) {
	raw := validRawEntity()
	raw.OrgName, raw.LastName, raw.FirstName, raw.MidName = "", "", "JOHN", ""
	_, err := NewEntity(raw)
	if err == nil || !strings.Contains(err.Error(), "Organization Name and Last Name") {
		t.Errorf("error should name both failing fields, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name                       string
		org, last, first, mid      string
		want                       string
	}{
		{"org only", "ACME CORP", "", "", "", "ACME CORP"},
		{"individual", "", "DOE", "JOHN", "", "DOE, JOHN"},
		{"individual with middle", "", "DOE", "JOHN", "Q", "DOE, JOHN Q"},
		{"org and individual", "ACME CORP", "DOE", "JOHN", "", "ACME CORP - DOE, JOHN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRawEntity()
			raw.OrgName, raw.LastName, raw.FirstName, raw.MidName = tc.org, tc.last, tc.first, tc.mid
			e, err := NewEntity(raw)
			if err != nil {
				t.Fatalf("NewEntity: %v", err)
			}
			if got := e.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewEntity_DisplayNameTooLong(t *testing.T) {
	// Each part fits on its own; only the concatenation overflows the
	// form's 91-char name box.
	raw := validRawEntity()
	raw.OrgName = strings.Repeat("A", 60)
	raw.LastName = strings.Repeat("B", 30)
	raw.FirstName = "JOHN"
	if _, err := NewEntity(raw); !isKind(err, KindFieldLength) {
		t.Errorf("got %v, want field-length error on merged name", err)
	}
}

func TestWithSignor(t *testing.T) {
	base, err := NewEntity(validRawEntity())
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	e, err := base.WithSignor("jane roe", "treasurer", "987-654-321")
	if err != nil {
		t.Fatalf("WithSignor: %v", err)
	}
	if e.SignorInfo != "JANE ROE - TREASURER" {
		t.Errorf("SignorInfo = %q", e.SignorInfo)
	}
	if e.SignorTIN != "987-654-321" {
		t.Errorf("SignorTIN = %q", e.SignorTIN)
	}
	if base.SignorInfo != "" {
		t.Error("WithSignor must not mutate the base record")
	}

	e, err = base.WithSignor("jane roe", "", "")
	if err != nil {
		t.Fatalf("WithSignor: %v", err)
	}
	if e.SignorInfo != "JANE ROE" {
		t.Errorf("name only: SignorInfo = %q", e.SignorInfo)
	}

	e, err = base.WithSignor("", "treasurer", "")
	if err != nil {
		t.Fatalf("WithSignor: %v", err)
	}
	if e.SignorInfo != "TREASURER" {
		t.Errorf("position only: SignorInfo = %q", e.SignorInfo)
	}

	if _, err := base.WithSignor("jane", "treasurer", "987-654"); err == nil {
		t.Error("malformed signor TIN should fail")
	}
}

func TestRawName(t *testing.T) {
	e, err := NewEntity(validRawEntity())
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	if got := e.RawName(); got != "ACME CORPDOEJOHNQ" {
		t.Errorf("RawName() = %q", got)
	}
}

func isKind(err error, kind ErrorKind) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == kind
}
