// Package security implements the per-file security scan: malware detection,
// file-type validation, content risk patterns and structural checks, reduced
// into one [0,100] security score plus issues.
package security

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vieraprotocol/subvet/internal/domain"
)

const (
	largeFileBytes     = 100 * 1024 * 1024
	truncatedCodeBytes = 10

	suspiciousTypeDeduction = 20
	largeFileDeduction      = 5
	truncatedCodeDeduction  = 2
	timeoutDeduction        = 5
)

// pe executables start with the two-byte MZ marker.
var peSignature = []byte{'M', 'Z'}

// stageResult is the explicit outcome of one scan stage. A stage always
// yields a result; failures surface as issues, never as escaped errors.
type stageResult struct {
	issues    []domain.Issue
	deduction int
	critical  bool
}

// Analyzer runs the four security stages against a single file.
type Analyzer struct {
	antivirus domain.AntivirusOracle
	timeout   time.Duration
}

// NewAnalyzer creates a security analyzer. antivirus may be nil, in which
// case the malware stage is skipped entirely.
func NewAnalyzer(antivirus domain.AntivirusOracle, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{antivirus: antivirus, timeout: timeout}
}

// Scan runs all stages in fixed order and reduces their deductions into a
// final score. A malware hit is a critical failure: the score is forced to 0
// no matter what the other stages contribute.
func (a *Analyzer) Scan(ctx context.Context, file domain.FileInfo) (int, []domain.Issue) {
	stages := []struct {
		name string
		run  func(context.Context, domain.FileInfo) stageResult
	}{
		{"malware_scan", a.scanMalware},
		{"file_type_validation", a.validateFileType},
		{"content_pattern_scan", a.scanContent},
		{"structure_validation", a.validateStructure},
	}

	var issues []domain.Issue
	deduction := 0
	critical := false

	for _, stage := range stages {
		res := runStage(ctx, stage.name, file, stage.run)
		issues = append(issues, res.issues...)
		deduction += res.deduction
		critical = critical || res.critical
	}

	if critical {
		return 0, issues
	}
	return domain.ClampScore(100 - deduction), issues
}

// runStage executes one stage, converting any panic into an error issue so
// no failure escapes into the orchestrator.
func runStage(ctx context.Context, name string, file domain.FileInfo,
	fn func(context.Context, domain.FileInfo) stageResult) (res stageResult) {

	defer func() {
		if r := recover(); r != nil {
			res = stageResult{issues: []domain.Issue{{
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("Security stage failed: %v", r),
				File:     file.Name,
				Rule:     name + "_error",
			}}}
		}
	}()

	return fn(ctx, file)
}

func (a *Analyzer) scanMalware(ctx context.Context, file domain.FileInfo) stageResult {
	if a.antivirus == nil {
		return stageResult{}
	}

	scanCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	verdict, err := a.antivirus.Scan(scanCtx, file.Content)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return stageResult{
			issues: []domain.Issue{{
				Severity: domain.SeverityWarning,
				Message:  "Antivirus scan timed out",
				File:     file.Name,
				Rule:     "antivirus_timeout",
			}},
			deduction: timeoutDeduction,
		}
	case err != nil:
		// Unreachable daemon means skipped, never infected.
		return stageResult{}
	}

	if !verdict.Infected {
		return stageResult{}
	}
	return stageResult{
		issues: []domain.Issue{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Malware detected: %s", verdict.Signature),
			File:     file.Name,
			Rule:     "clamav_scan",
		}},
		critical: true,
	}
}

func (a *Analyzer) validateFileType(_ context.Context, file domain.FileInfo) stageResult {
	var issues []domain.Issue
	ext := strings.ToLower(filepath.Ext(file.Name))

	if dangerousExtensions[ext] {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Dangerous file type not allowed: %s", ext),
			File:     file.Name,
			Rule:     "file_type_validation",
		})
	}
	if bytes.HasPrefix(file.Content, peSignature) {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  "Executable file detected by signature",
			File:     file.Name,
			Rule:     "file_signature_check",
		})
	}

	if len(issues) == 0 {
		return stageResult{}
	}
	// The flat deduction applies once even when both conditions trigger.
	return stageResult{issues: issues, deduction: suspiciousTypeDeduction}
}

func (a *Analyzer) scanContent(_ context.Context, file domain.FileInfo) stageResult {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !textExtensions[ext] {
		return stageResult{}
	}

	content := string(file.Content)
	var issues []domain.Issue
	deduction := 0

	for _, p := range riskPatterns {
		matches := p.re.FindAllString(content, -1)
		if len(matches) == 0 {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: p.severity,
			Message:  fmt.Sprintf("%s (%d occurrences)", p.message, len(matches)),
			File:     file.Name,
			Rule:     "content_pattern_scan",
		})
		deduction += patternWeights[p.severity]
	}

	if deduction > contentDeductionCap {
		deduction = contentDeductionCap
	}
	return stageResult{issues: issues, deduction: deduction}
}

func (a *Analyzer) validateStructure(_ context.Context, file domain.FileInfo) stageResult {
	var issues []domain.Issue
	deduction := 0

	if file.Size > largeFileBytes {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Large file size: %.1fMB", float64(file.Size)/(1024*1024)),
			File:     file.Name,
			Rule:     "file_size_check",
		})
		deduction += largeFileDeduction
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if codeExtensions[ext] && file.Size < truncatedCodeBytes {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  "Very small code file detected",
			File:     file.Name,
			Rule:     "file_size_check",
		})
		deduction += truncatedCodeDeduction
	}

	return stageResult{issues: issues, deduction: deduction}
}
