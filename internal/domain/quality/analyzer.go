// Package quality implements per-file code validation: syntax, quality
// linting, security linting and complexity heuristics, reduced into one
// [0,100] technical-quality score plus issues.
package quality

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vieraprotocol/subvet/internal/domain"
)

const (
	neutralScore = 50

	syntaxErrorDeduction    = 50
	syntaxFallbackDeduction = 10
	lintErrorDeduction      = 5
	lintWarningDeduction    = 2
	lintDeductionCap        = 30
	lintTimeoutDeduction    = 5
	securityDeductionCap    = 40

	maxFileLines      = 500
	largeFileDeduction = 3
	minDocLines        = 20
	minDocRatio        = 0.10
	lowDocDeduction    = 2
)

// Oracles bundles the per-language checking tools. Missing entries degrade
// the corresponding stage, they never fail the file.
type Oracles struct {
	Syntax       map[domain.Language]domain.SyntaxOracle
	Lint         map[domain.Language]domain.LintOracle
	SecurityLint map[domain.Language]domain.SecurityLintOracle
}

// Analyzer validates a single code file through four stages.
type Analyzer struct {
	oracles Oracles
	timeout time.Duration
}

// NewAnalyzer creates a code quality analyzer.
func NewAnalyzer(oracles Oracles, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{oracles: oracles, timeout: timeout}
}

type stageResult struct {
	issues    []domain.Issue
	deduction int
}

// Validate resolves the file's language and runs all four stages.
// Unrecognized extensions short-circuit to a neutral score.
func (a *Analyzer) Validate(ctx context.Context, file domain.FileInfo) (int, []domain.Issue) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	lang, ok := domain.LanguageForExtension(ext)
	if !ok {
		return neutralScore, []domain.Issue{{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Unsupported file type for code validation: %s", ext),
			File:     file.Name,
			Rule:     "language_detection",
		}}
	}
	return a.ValidateSource(ctx, string(file.Content), lang, file.Name)
}

// ValidateSource validates source text for an already-resolved language.
func (a *Analyzer) ValidateSource(ctx context.Context, source string, lang *domain.LanguageSpec, filename string) (int, []domain.Issue) {
	stages := []struct {
		name string
		run  func(context.Context, string, *domain.LanguageSpec, string) stageResult
	}{
		{"syntax_validation", a.checkSyntax},
		{"quality_analysis", a.lintQuality},
		{"security_analysis", a.lintSecurity},
		{"complexity_analysis", a.analyzeComplexity},
	}

	var issues []domain.Issue
	deduction := 0

	for _, stage := range stages {
		res := runStage(ctx, stage.name, source, lang, filename, stage.run)
		issues = append(issues, res.issues...)
		deduction += res.deduction
	}

	return domain.ClampScore(100 - deduction), issues
}

// runStage executes one stage, converting any panic into an error issue so
// no failure escapes into the orchestrator.
func runStage(ctx context.Context, name, source string, lang *domain.LanguageSpec, filename string,
	fn func(context.Context, string, *domain.LanguageSpec, string) stageResult) (res stageResult) {

	defer func() {
		if r := recover(); r != nil {
			res = stageResult{issues: []domain.Issue{{
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("Code validation stage failed: %v", r),
				File:     filename,
				Rule:     name + "_error",
			}}}
		}
	}()

	return fn(ctx, source, lang, filename)
}

func (a *Analyzer) checkSyntax(ctx context.Context, source string, lang *domain.LanguageSpec, filename string) stageResult {
	oracle := a.oracles.Syntax[lang.Name]
	if oracle == nil {
		return syntaxFallback(filename, "No syntax checker available")
	}

	checkCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := oracle.Check(checkCtx, source)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return syntaxFallback(filename, "Syntax check timed out")
	case err != nil:
		return syntaxFallback(filename, fmt.Sprintf("Syntax validation failed: %v", err))
	}

	if result.Valid {
		return stageResult{}
	}
	return stageResult{
		issues: []domain.Issue{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Syntax error: %s", result.Error),
			File:     filename,
			Line:     result.Line,
			Rule:     "syntax_validation",
		}},
		deduction: syntaxErrorDeduction,
	}
}

// syntaxFallback degrades an unavailable or timed-out syntax oracle to a
// warning and a flat deduction, never a hard failure.
func syntaxFallback(filename, msg string) stageResult {
	return stageResult{
		issues: []domain.Issue{{
			Severity: domain.SeverityWarning,
			Message:  msg,
			File:     filename,
			Rule:     "syntax_validation_error",
		}},
		deduction: syntaxFallbackDeduction,
	}
}

func (a *Analyzer) lintQuality(ctx context.Context, source string, lang *domain.LanguageSpec, filename string) stageResult {
	oracle := a.oracles.Lint[lang.Name]
	if oracle == nil {
		return stageResult{}
	}

	lintCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	findings, err := oracle.Lint(lintCtx, source)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return stageResult{
			issues: []domain.Issue{{
				Severity: domain.SeverityWarning,
				Message:  "Code quality analysis timed out",
				File:     filename,
				Rule:     "quality_timeout",
			}},
			deduction: lintTimeoutDeduction,
		}
	case errors.Is(err, domain.ErrOracleUnavailable):
		return stageResult{}
	case err != nil:
		return stageResult{issues: []domain.Issue{{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Code quality analysis failed: %v", err),
			File:     filename,
			Rule:     "quality_analysis_error",
		}}}
	}

	var issues []domain.Issue
	deduction := 0
	for _, f := range findings {
		severity := domain.SeverityWarning
		if f.Severity == domain.SeverityError {
			severity = domain.SeverityError
			deduction += lintErrorDeduction
		} else {
			deduction += lintWarningDeduction
		}

		rule := f.Code
		if rule == "" {
			rule = "quality_lint"
		}
		issues = append(issues, domain.Issue{
			Severity: severity,
			Message:  f.Message,
			File:     filename,
			Line:     f.Line,
			Rule:     rule,
		})
	}

	if deduction > lintDeductionCap {
		deduction = lintDeductionCap
	}
	return stageResult{issues: issues, deduction: deduction}
}

func (a *Analyzer) lintSecurity(ctx context.Context, source string, lang *domain.LanguageSpec, filename string) stageResult {
	oracle := a.oracles.SecurityLint[lang.Name]
	if lang.HasSecurityLinter && oracle != nil {
		return a.lintSecurityOracle(ctx, oracle, source, filename)
	}
	return scanBuiltinPatterns(source, filename)
}

func (a *Analyzer) lintSecurityOracle(ctx context.Context, oracle domain.SecurityLintOracle, source, filename string) stageResult {
	lintCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	findings, err := oracle.Analyze(lintCtx, source)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return stageResult{
			issues: []domain.Issue{{
				Severity: domain.SeverityWarning,
				Message:  "Security analysis timed out",
				File:     filename,
				Rule:     "security_timeout",
			}},
			deduction: lintTimeoutDeduction,
		}
	case errors.Is(err, domain.ErrOracleUnavailable):
		return stageResult{}
	case err != nil:
		return stageResult{issues: []domain.Issue{{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Security analysis failed: %v", err),
			File:     filename,
			Rule:     "security_analysis_error",
		}}}
	}

	var issues []domain.Issue
	deduction := 0
	for _, f := range findings {
		mapped, ok := securityFindingSeverities[f.Severity]
		if !ok {
			mapped = securityFindingSeverities[domain.SecuritySeverityLow]
		}
		deduction += mapped.deduction

		issues = append(issues, domain.Issue{
			Severity: mapped.severity,
			Message:  f.Message,
			File:     filename,
			Line:     f.Line,
			Rule:     f.RuleID,
		})
	}

	if deduction > securityDeductionCap {
		deduction = securityDeductionCap
	}
	return stageResult{issues: issues, deduction: deduction}
}

// scanBuiltinPatterns applies the declarative risk table for languages
// without a dedicated security linter. One issue per triggered rule.
func scanBuiltinPatterns(source, filename string) stageResult {
	var issues []domain.Issue
	deduction := 0

	for _, p := range builtinSecurityPatterns {
		matches := p.re.FindAllString(source, -1)
		if len(matches) == 0 {
			continue
		}
		deduction += p.deduction
		issues = append(issues, domain.Issue{
			Severity: p.severity,
			Message:  fmt.Sprintf("%s (%d occurrences)", p.message, len(matches)),
			File:     filename,
			Rule:     "js_security_pattern",
		})
	}

	if deduction > securityDeductionCap {
		deduction = securityDeductionCap
	}
	return stageResult{issues: issues, deduction: deduction}
}

func (a *Analyzer) analyzeComplexity(_ context.Context, source string, lang *domain.LanguageSpec, filename string) stageResult {
	var issues []domain.Issue
	deduction := 0

	lines := strings.Split(source, "\n")
	nonEmpty := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}

	if len(lines) > maxFileLines {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Large file: %d lines (consider splitting)", len(lines)),
			File:     filename,
			Rule:     "file_size_complexity",
		})
		deduction += largeFileDeduction
	}

	if nonEmpty > minDocLines {
		docs, lineComments := lang.CountComments(source)
		ratio := float64(docs+lineComments) / float64(nonEmpty)
		if ratio < minDocRatio {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityInfo,
				Message:  "Consider adding more comments and documentation",
				File:     filename,
				Rule:     "documentation_ratio",
			})
			deduction += lowDocDeduction
		}
	}

	return stageResult{issues: issues, deduction: deduction}
}
