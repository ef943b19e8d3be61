package domain

import (
	"context"
	"errors"
)

// ErrOracleUnavailable signals that an external checking tool cannot be
// reached. Stages treat it as "skipped": no deduction, no forced issue.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// ScanVerdict is the outcome of an antivirus scan.
type ScanVerdict struct {
	Infected  bool
	Signature string
}

// AntivirusOracle scans raw file content for malware.
type AntivirusOracle interface {
	Scan(ctx context.Context, content []byte) (ScanVerdict, error)
}

// SyntaxResult is the outcome of a syntax check.
type SyntaxResult struct {
	Valid bool
	Error string
	Line  int
}

// SyntaxOracle validates source text for one language.
type SyntaxOracle interface {
	Check(ctx context.Context, source string) (SyntaxResult, error)
}

// LintFinding is a single quality-lint result. Severity is one of the
// Severity* constants; the oracle classifies critical rule codes as errors.
type LintFinding struct {
	Severity string
	Code     string
	Message  string
	Line     int
}

// LintOracle runs a quality linter for one language.
type LintOracle interface {
	Lint(ctx context.Context, source string) ([]LintFinding, error)
}

// Security-lint severity levels as reported by dedicated security linters.
const (
	SecuritySeverityLow    = "low"
	SecuritySeverityMedium = "medium"
	SecuritySeverityHigh   = "high"
)

// SecurityFinding is a single security-lint result.
type SecurityFinding struct {
	Severity string
	Message  string
	RuleID   string
	Line     int
}

// SecurityLintOracle runs a dedicated security linter for one language.
// Only some languages define one; the rest fall back to a built-in pattern
// table.
type SecurityLintOracle interface {
	Analyze(ctx context.Context, source string) ([]SecurityFinding, error)
}

// OriginalityOracle rates how original a submitted file is. The current
// implementation is a static baseline; the port keeps plagiarism detection
// pluggable as an independently scored category.
type OriginalityOracle interface {
	Score(ctx context.Context, file FileInfo) (int, error)
}

// CompletenessOracle rates how complete a submission is against its
// milestone. Static baseline for now, pluggable like OriginalityOracle.
type CompletenessOracle interface {
	Score(ctx context.Context, file FileInfo) (int, error)
}

// GitInfo provides repository metadata for a submission directory.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// ReportEntry is one line of validation history.
type ReportEntry struct {
	Timestamp      string         `json:"timestamp"`
	ValidationID   string         `json:"validation_id"`
	Confidence     int            `json:"confidence"`
	Recommendation Recommendation `json:"recommendation"`
}

// ReportHistory persists validation outcomes per project.
type ReportHistory interface {
	Save(path string, entry ReportEntry) error
	Load(path string) ([]ReportEntry, error)
}
