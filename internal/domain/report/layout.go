package report

// SectionKind selects the builder that fills a section
type SectionKind string

const (
	SectionIdentification   SectionKind = "IDENTIFICATION"
	SectionScope            SectionKind = "SCOPE"
	SectionProcedures       SectionKind = "PROCEDURES"
	SectionFindings         SectionKind = "FINDINGS"
	SectionSpecificFindings SectionKind = "SPECIFIC_FINDINGS"
	SectionOpinion          SectionKind = "OPINION"
	SectionSignature        SectionKind = "SIGNATURE"
	SectionExecutiveSummary SectionKind = "EXECUTIVE_SUMMARY"
)

// SectionSpec places one section in a layout
type SectionSpec struct {
	Kind           SectionKind
	Title          string
	PageBreakAfter bool
}

// NarrativeLayout is the fixed section order of the audit report
var NarrativeLayout = []SectionSpec{
	{Kind: SectionIdentification, Title: "I. IDENTIFICATION OF THE AUDITED ENTITY"},
	{Kind: SectionScope, Title: "II. SCOPE OF THE ENGAGEMENT"},
	{Kind: SectionProcedures, Title: "2.1 Audit Procedures Applied (RT 7)", PageBreakAfter: true},
	{Kind: SectionFindings, Title: "III. FINDINGS"},
	{Kind: SectionSpecificFindings, Title: "IV. SPECIFIC FINDINGS", PageBreakAfter: true},
	{Kind: SectionOpinion, Title: "V. AUDIT OPINION"},
	{Kind: SectionSignature},
}

// ExecutiveLayout is the one-page consolidated summary
var ExecutiveLayout = []SectionSpec{
	{Kind: SectionExecutiveSummary, Title: "Executive Summary"},
}
