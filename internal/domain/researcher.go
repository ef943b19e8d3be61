package domain

import "fmt"

// ResearcherType identifies the kind of researcher submitting work. Code
// quality analysis only runs for coder submissions.
type ResearcherType string

const (
	ResearcherCoder         ResearcherType = "coder"
	ResearcherGeneral       ResearcherType = "researcher"
	ResearcherDataScientist ResearcherType = "data_scientist"
)

// ValidResearcherTypes enumerates all recognized researcher types.
var ValidResearcherTypes = []ResearcherType{
	ResearcherCoder,
	ResearcherGeneral,
	ResearcherDataScientist,
}

// Valid reports whether the researcher type is recognized.
func (r ResearcherType) Valid() bool {
	for _, t := range ValidResearcherTypes {
		if r == t {
			return true
		}
	}
	return false
}

// Validate returns an error for unrecognized researcher types.
func (r ResearcherType) Validate() error {
	if !r.Valid() {
		return fmt.Errorf("invalid researcher type %q (valid: %v)", r, ValidResearcherTypes)
	}
	return nil
}
