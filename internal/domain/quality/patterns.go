package quality

import (
	"regexp"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// securityPattern is one entry of the built-in risk table used for languages
// without a dedicated security-lint oracle.
type securityPattern struct {
	re        *regexp.Regexp
	message   string
	severity  string
	deduction int
}

// builtinSecurityPatterns covers the common dynamic-evaluation, DOM-write
// and string-timer risks in JavaScript-family sources.
var builtinSecurityPatterns = []securityPattern{
	{regexp.MustCompile(`(?i)eval\s*\(`), "Use of eval() detected", domain.SeverityError, 15},
	{regexp.MustCompile(`(?i)innerHTML\s*=`), "Potential XSS with innerHTML", domain.SeverityWarning, 8},
	{regexp.MustCompile(`(?i)document\.write\s*\(`), "Use of document.write detected", domain.SeverityWarning, 8},
	{regexp.MustCompile(`(?i)setTimeout\s*\(\s*["']`), "setTimeout with string argument", domain.SeverityWarning, 8},
	{regexp.MustCompile(`(?i)setInterval\s*\(\s*["']`), "setInterval with string argument", domain.SeverityWarning, 8},
}

// securityFindingSeverities maps the three-level security-lint scale onto
// issue severities and deductions.
var securityFindingSeverities = map[string]struct {
	severity  string
	deduction int
}{
	domain.SecuritySeverityLow:    {domain.SeverityInfo, 3},
	domain.SecuritySeverityMedium: {domain.SeverityWarning, 8},
	domain.SecuritySeverityHigh:   {domain.SeverityError, 15},
}
