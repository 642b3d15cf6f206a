package domain

import "strconv"

// Certificate is one physical Form 2307: a payee within one reporting
// period, holding up to MaxAggregates distinct ATC aggregates.
type Certificate struct {
	Payee *EntityRecord
	Month int
	Year  int
	Lines *Collection
}

func newCertificate(payee *EntityRecord, li *LineItem) *Certificate {
	return &Certificate{
		Payee: payee,
		Month: li.Month,
		Year:  li.Year,
		Lines: NewCollection(),
	}
}

// SequencedCertificate pairs a certificate with its 1-based position within
// its payee/period group; the sequence appears in the output file name.
type SequencedCertificate struct {
	Sequence    int
	Certificate *Certificate
}

// CertificateSet groups certificate instances by payee TIN and reporting
// period, opening a new instance whenever the current one is full. Within a
// group only the last instance can be non-full.
type CertificateSet struct {
	order []string
	byKey map[string][]*Certificate
}

func NewCertificateSet() *CertificateSet {
	return &CertificateSet{byKey: make(map[string][]*Certificate)}
}

func groupKey(payee *EntityRecord, li *LineItem) string {
	return payee.TIN.String() + "--" + strconv.Itoa(li.Month) + "-" + strconv.Itoa(li.Year)
}

// current returns the open instance for key, or nil when the group is empty
// or its last instance is already full.
func (s *CertificateSet) current(key string) *Certificate {
	list := s.byKey[key]
	if len(list) == 0 || list[len(list)-1].Lines.IsFull() {
		return nil
	}
	return list[len(list)-1]
}

// Record routes one validated line item into its payee/period group,
// appending a fresh instance when none is open.
func (s *CertificateSet) Record(payee *EntityRecord, li *LineItem) {
	key := groupKey(payee, li)

	cert := s.current(key)
	if cert == nil {
		cert = newCertificate(payee, li)
		if _, seen := s.byKey[key]; !seen {
			s.order = append(s.order, key)
		}
		s.byKey[key] = append(s.byKey[key], cert)
	}

	cert.Lines.Add(li)
}

// All yields every instance with its sequence number: groups in first-seen
// order, instances within a group in creation order, sequences 1-based.
func (s *CertificateSet) All() []SequencedCertificate {
	var out []SequencedCertificate
	for _, key := range s.order {
		for i, cert := range s.byKey[key] {
			out = append(out, SequencedCertificate{Sequence: i + 1, Certificate: cert})
		}
	}
	return out
}

// Len returns the total number of certificate instances across all groups.
func (s *CertificateSet) Len() int {
	n := 0
	for _, key := range s.order {
		n += len(s.byKey[key])
	}
	return n
}
