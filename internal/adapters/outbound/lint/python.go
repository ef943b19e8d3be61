package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// astCheck parses stdin with Python's ast module and reports the first
// syntax error as "line:message" on stderr.
const astCheck = `import ast, sys
try:
    ast.parse(sys.stdin.read())
except SyntaxError as e:
    print("%d:%s" % (e.lineno or 0, e.msg), file=sys.stderr)
    sys.exit(1)
`

// PythonSyntax implements domain.SyntaxOracle via the interpreter's parser.
type PythonSyntax struct {
	bin string
}

func NewPythonSyntax(bin string) *PythonSyntax {
	return &PythonSyntax{bin: bin}
}

func (p *PythonSyntax) Check(ctx context.Context, source string) (domain.SyntaxResult, error) {
	out, err := runTool(ctx, p.bin, []string{"-c", astCheck}, source)
	if err != nil {
		return domain.SyntaxResult{}, err
	}
	if out.exitCode == 0 {
		return domain.SyntaxResult{Valid: true}, nil
	}

	line, msg := 0, strings.TrimSpace(out.stderr)
	if idx := strings.Index(msg, ":"); idx > 0 {
		if n, err := strconv.Atoi(msg[:idx]); err == nil {
			line = n
			msg = strings.TrimSpace(msg[idx+1:])
		}
	}
	return domain.SyntaxResult{Valid: false, Error: msg, Line: line}, nil
}

// flake8Line matches the output of --format=%(path)s:%(row)d:%(col)d:%(code)s:%(text)s.
var flake8Line = regexp.MustCompile(`^(.+?):(\d+):(\d+):([A-Z]\d+):(.*)$`)

// Flake8 implements domain.LintOracle. Fatal E9xx and undefined-name Fxxx
// codes classify as errors, everything else as warnings.
type Flake8 struct {
	bin string
}

func NewFlake8(bin string) *Flake8 {
	return &Flake8{bin: bin}
}

func (f *Flake8) Lint(ctx context.Context, source string) ([]domain.LintFinding, error) {
	path, cleanup, err := writeScratch(source, ".py")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := runTool(ctx, f.bin, []string{"--format=%(path)s:%(row)d:%(col)d:%(code)s:%(text)s", path}, "")
	if err != nil {
		return nil, err
	}

	var findings []domain.LintFinding
	for _, raw := range strings.Split(strings.TrimSpace(out.stdout), "\n") {
		m := flake8Line.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		code := m[4]
		severity := domain.SeverityWarning
		if strings.HasPrefix(code, "E9") || strings.HasPrefix(code, "F") {
			severity = domain.SeverityError
		}

		line, _ := strconv.Atoi(m[2])
		findings = append(findings, domain.LintFinding{
			Severity: severity,
			Code:     code,
			Message:  fmt.Sprintf("%s: %s", code, strings.TrimSpace(m[5])),
			Line:     line,
		})
	}
	return findings, nil
}

// banditReport mirrors bandit's -f json output.
type banditReport struct {
	Results []struct {
		IssueSeverity string `json:"issue_severity"`
		IssueText     string `json:"issue_text"`
		TestName      string `json:"test_name"`
		TestID        string `json:"test_id"`
		LineNumber    int    `json:"line_number"`
	} `json:"results"`
}

// Bandit implements domain.SecurityLintOracle for Python.
type Bandit struct {
	bin string
}

func NewBandit(bin string) *Bandit {
	return &Bandit{bin: bin}
}

func (b *Bandit) Analyze(ctx context.Context, source string) ([]domain.SecurityFinding, error) {
	path, cleanup, err := writeScratch(source, ".py")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := runTool(ctx, b.bin, []string{"-f", "json", path}, "")
	if err != nil {
		return nil, err
	}

	var report banditReport
	if err := json.Unmarshal([]byte(out.stdout), &report); err != nil {
		// Bandit prints nothing parseable when it has no findings.
		return nil, nil
	}

	severities := map[string]string{
		"LOW":    domain.SecuritySeverityLow,
		"MEDIUM": domain.SecuritySeverityMedium,
		"HIGH":   domain.SecuritySeverityHigh,
	}

	var findings []domain.SecurityFinding
	for _, r := range report.Results {
		severity, ok := severities[strings.ToUpper(r.IssueSeverity)]
		if !ok {
			severity = domain.SecuritySeverityLow
		}
		findings = append(findings, domain.SecurityFinding{
			Severity: severity,
			Message:  fmt.Sprintf("%s: %s", r.IssueText, r.TestName),
			RuleID:   fmt.Sprintf("bandit-%s", r.TestID),
			Line:     r.LineNumber,
		})
	}
	return findings, nil
}
