package domain

import "regexp"

// tinSeparators splits a TIN the way clerks type them: hyphens with or
// without spacing, runs of whitespace, or any other non-digit.
var tinSeparators = regexp.MustCompile(`\s*-\s*|\s+|\D`)

const (
	tinSegmentLen = 3
	tinBranchLen  = 5
)

// TIN is a validated Tax Identification Number: three 3-digit head segments
// and, unless parsed branch-optional, a 5-digit branch code.
type TIN struct {
	raw      string
	segments []string
}

// ParseTIN validates the mandatory 4-segment form (XXX-XXX-XXX-XXXXX).
func ParseTIN(raw string) (TIN, error) { return parseTIN(raw, false) }

// ParseSignorTIN accepts the 3-segment form as well; signor TINs on the
// ledger frequently omit the branch code.
func ParseSignorTIN(raw string) (TIN, error) { return parseTIN(raw, true) }

func parseTIN(raw string, branchOptional bool) (TIN, error) {
	segments := tinSeparators.Split(raw, -1)

	n := len(segments)
	if n != 4 && !(branchOptional && n == 3) {
		return TIN{}, validationErrorf(KindIdentifierFormat, "TIN", raw,
			"want 3-3-3-5 segments, got %d segments", n)
	}

	for i := 0; i < 3; i++ {
		if len(segments[i]) != tinSegmentLen {
			return TIN{}, validationErrorf(KindSegmentLength, "TIN", raw,
				"segment at position %d should be %d digits, not %d", i+1, tinSegmentLen, len(segments[i]))
		}
	}
	if n == 4 && len(segments[3]) != tinBranchLen {
		return TIN{}, validationErrorf(KindSegmentLength, "TIN", raw,
			"segment at position 4 should be %d digits, not %d", tinBranchLen, len(segments[3]))
	}

	return TIN{raw: raw, segments: segments}, nil
}

// String returns the TIN exactly as it appeared on the ledger.
func (t TIN) String() string { return t.raw }

// Segments returns the split segments: three head units plus the branch
// code when present.
func (t TIN) Segments() []string { return t.segments }

// Branch returns the 5-digit branch code, or "" for a 3-segment TIN.
func (t TIN) Branch() string {
	if len(t.segments) == 4 {
		return t.segments[3]
	}
	return ""
}

func (t TIN) IsZero() bool { return t.raw == "" }
