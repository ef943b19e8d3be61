package lint

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// nodeErrorLine matches the "file.js:12" location node prints before the
// SyntaxError detail.
var nodeErrorLine = regexp.MustCompile(`\.js:(\d+)`)

// NodeSyntax implements domain.SyntaxOracle using node --check.
type NodeSyntax struct {
	bin string
}

func NewNodeSyntax(bin string) *NodeSyntax {
	return &NodeSyntax{bin: bin}
}

func (n *NodeSyntax) Check(ctx context.Context, source string) (domain.SyntaxResult, error) {
	path, cleanup, err := writeScratch(source, ".js")
	if err != nil {
		return domain.SyntaxResult{}, err
	}
	defer cleanup()

	out, err := runTool(ctx, n.bin, []string{"--check", path}, "")
	if err != nil {
		return domain.SyntaxResult{}, err
	}
	if out.exitCode == 0 {
		return domain.SyntaxResult{Valid: true}, nil
	}

	line := 0
	if m := nodeErrorLine.FindStringSubmatch(out.stderr); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	return domain.SyntaxResult{
		Valid: false,
		Error: condenseNodeError(out.stderr),
		Line:  line,
	}, nil
}

// condenseNodeError keeps the SyntaxError line out of node's multi-line
// stack dump.
func condenseNodeError(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(line, "SyntaxError") {
			return strings.TrimSpace(line)
		}
	}
	return strings.TrimSpace(stderr)
}

// eslintReport mirrors eslint's --format=json output.
type eslintReport []struct {
	Messages []struct {
		Severity int    `json:"severity"`
		Message  string `json:"message"`
		Line     int    `json:"line"`
		RuleID   string `json:"ruleId"`
	} `json:"messages"`
}

// ESLint implements domain.LintOracle for JavaScript. ESLint severity 2
// classifies as error, severity 1 as warning.
type ESLint struct {
	bin string
}

func NewESLint(bin string) *ESLint {
	return &ESLint{bin: bin}
}

func (e *ESLint) Lint(ctx context.Context, source string) ([]domain.LintFinding, error) {
	path, cleanup, err := writeScratch(source, ".js")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := runTool(ctx, e.bin, []string{"--format=json", path}, "")
	if err != nil {
		return nil, err
	}

	var report eslintReport
	if err := json.Unmarshal([]byte(out.stdout), &report); err != nil {
		// ESLint may not emit valid JSON when invoked without findings.
		return nil, nil
	}

	var findings []domain.LintFinding
	for _, file := range report {
		for _, msg := range file.Messages {
			severity := domain.SeverityWarning
			if msg.Severity == 2 {
				severity = domain.SeverityError
			}
			findings = append(findings, domain.LintFinding{
				Severity: severity,
				Code:     msg.RuleID,
				Message:  msg.Message,
				Line:     msg.Line,
			})
		}
	}
	return findings, nil
}
