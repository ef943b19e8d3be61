package security

import (
	"regexp"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// riskPattern is one entry of the declarative content-risk table. One issue
// is emitted per triggered pattern, aggregating the match count into the
// message; the deduction weight follows the severity.
type riskPattern struct {
	re       *regexp.Regexp
	message  string
	severity string
}

// riskPatterns is scanned in order against decoded text content.
var riskPatterns = []riskPattern{
	{regexp.MustCompile(`(?i)eval\s*\(`), "Use of eval() function detected", domain.SeverityWarning},
	{regexp.MustCompile(`(?i)exec\s*\(`), "Use of exec() function detected", domain.SeverityWarning},
	{regexp.MustCompile(`(?i)__import__\s*\(`), "Dynamic import detected", domain.SeverityInfo},
	{regexp.MustCompile(`(?i)subprocess\.|os\.system|os\.popen`), "System command execution detected", domain.SeverityWarning},
	{regexp.MustCompile(`(?i)socket\.|urllib|requests`), "Network operation detected", domain.SeverityInfo},
	{regexp.MustCompile(`(?i)base64\.decode|base64\.b64decode`), "Base64 decoding detected", domain.SeverityInfo},
	{regexp.MustCompile(`(?i)pickle\.loads?|marshal\.loads?`), "Unsafe deserialization detected", domain.SeverityError},
}

// patternWeights maps severity to the per-pattern deduction weight.
var patternWeights = map[string]int{
	domain.SeverityError:   30,
	domain.SeverityWarning: 10,
	domain.SeverityInfo:    2,
}

// contentDeductionCap bounds the total content-stage deduction so one noisy
// file cannot zero the score on info-level matches alone.
const contentDeductionCap = 50

// dangerousExtensions are executable-style extensions that have no place in
// a research submission.
var dangerousExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".scr": true, ".pif": true,
	".com": true, ".dll": true, ".msi": true, ".vbs": true, ".ps1": true,
	".jar": true, ".app": true, ".deb": true, ".rpm": true,
}

// textExtensions gate the content-pattern stage to decodable source/text.
var textExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".java": true,
	".cpp": true, ".c": true, ".h": true, ".txt": true, ".md": true,
}

// codeExtensions gate the truncated-file heuristic of the structure stage.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".java": true, ".cpp": true,
}
