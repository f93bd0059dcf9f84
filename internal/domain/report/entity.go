package report

// EntityProfile identifies the audited entity and the signing auditors
type EntityProfile struct {
	Name       string
	TaxID      string
	Standards  string
	City       string
	Signatures []Signatory
}

// Signatory is one signature line at the end of the narrative report
type Signatory struct {
	Name  string
	Title string
}

// DefaultEntityProfile returns the sample entity used when none is configured
func DefaultEntityProfile() EntityProfile {
	return EntityProfile{
		Name:      "EMPRESA EJEMPLO S.A.",
		TaxID:     "30-12345678-9",
		Standards: "RT 7, RT 37 (FACPCE) and International Standards on Auditing",
		City:      "Buenos Aires",
		Signatures: []Signatory{
			{Name: "Certified Public Accountant", Title: "Engagement Auditor"},
			{Name: "Managing Partner", Title: "Audit Firm"},
		},
	}
}
