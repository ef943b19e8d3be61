package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// fakeTool writes an executable shell script standing in for an external
// linter, so the output parsing is exercised without the real tools.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestRunTool_MissingBinary(t *testing.T) {
	_, err := runTool(context.Background(), "/nonexistent/binary", nil, "")
	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}

func TestRunTool_NonZeroExitIsNotAnError(t *testing.T) {
	bin := fakeTool(t, "echo findings; exit 1")

	out, err := runTool(context.Background(), bin, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, out.exitCode)
	assert.Contains(t, out.stdout, "findings")
}

func TestPythonSyntax_Valid(t *testing.T) {
	bin := fakeTool(t, "cat >/dev/null; exit 0")
	oracle := NewPythonSyntax(bin)

	result, err := oracle.Check(context.Background(), "x = 1\n")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestPythonSyntax_Invalid(t *testing.T) {
	bin := fakeTool(t, `cat >/dev/null; echo "3:invalid syntax" >&2; exit 1`)
	oracle := NewPythonSyntax(bin)

	result, err := oracle.Check(context.Background(), "def broken(:\n")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 3, result.Line)
	assert.Equal(t, "invalid syntax", result.Error)
}

func TestFlake8_ParsesAndClassifies(t *testing.T) {
	bin := fakeTool(t, `cat <<'OUT'
scratch.py:1:1:E999:SyntaxError: invalid syntax
scratch.py:2:80:E501:line too long (88 > 79 characters)
scratch.py:4:1:F821:undefined name 'foo'
scratch.py:5:1:W291:trailing whitespace
OUT
exit 1`)
	oracle := NewFlake8(bin)

	findings, err := oracle.Lint(context.Background(), "x = 1\n")
	require.NoError(t, err)
	require.Len(t, findings, 4)

	assert.Equal(t, domain.SeverityError, findings[0].Severity) // E9xx
	assert.Equal(t, domain.SeverityWarning, findings[1].Severity)
	assert.Equal(t, domain.SeverityError, findings[2].Severity) // Fxxx
	assert.Equal(t, domain.SeverityWarning, findings[3].Severity)

	assert.Equal(t, "E501", findings[1].Code)
	assert.Equal(t, 2, findings[1].Line)
	assert.Equal(t, "E501: line too long (88 > 79 characters)", findings[1].Message)
}

func TestFlake8_NoOutput(t *testing.T) {
	bin := fakeTool(t, "exit 0")
	oracle := NewFlake8(bin)

	findings, err := oracle.Lint(context.Background(), "x = 1\n")
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestBandit_ParsesReport(t *testing.T) {
	bin := fakeTool(t, `cat <<'OUT'
{"results": [
  {"issue_severity": "HIGH", "issue_text": "subprocess call with shell=True", "test_name": "subprocess_popen_with_shell_equals_true", "test_id": "B602", "line_number": 7},
  {"issue_severity": "LOW", "issue_text": "Use of assert detected", "test_name": "assert_used", "test_id": "B101", "line_number": 2}
]}
OUT
exit 1`)
	oracle := NewBandit(bin)

	findings, err := oracle.Analyze(context.Background(), "import subprocess\n")
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, domain.SecuritySeverityHigh, findings[0].Severity)
	assert.Equal(t, "bandit-B602", findings[0].RuleID)
	assert.Equal(t, 7, findings[0].Line)
	assert.Equal(t, domain.SecuritySeverityLow, findings[1].Severity)
}

func TestBandit_UnparseableOutput(t *testing.T) {
	bin := fakeTool(t, "echo not json; exit 0")
	oracle := NewBandit(bin)

	findings, err := oracle.Analyze(context.Background(), "x = 1\n")
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestNodeSyntax_Invalid(t *testing.T) {
	bin := fakeTool(t, `cat <<'OUT' >&2
/tmp/scratch.js:12
const = 1;
      ^
SyntaxError: Unexpected token '='
    at compileSourceTextModule (node:internal/modules)
OUT
exit 1`)
	oracle := NewNodeSyntax(bin)

	result, err := oracle.Check(context.Background(), "const = 1;\n")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 12, result.Line)
	assert.Equal(t, "SyntaxError: Unexpected token '='", result.Error)
}

func TestESLint_ParsesReport(t *testing.T) {
	bin := fakeTool(t, `cat <<'OUT'
[{"messages": [
  {"severity": 2, "message": "'x' is not defined.", "line": 3, "ruleId": "no-undef"},
  {"severity": 1, "message": "Unexpected console statement.", "line": 5, "ruleId": "no-console"}
]}]
OUT
exit 1`)
	oracle := NewESLint(bin)

	findings, err := oracle.Lint(context.Background(), "console.log(x);\n")
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, domain.SeverityError, findings[0].Severity)
	assert.Equal(t, "no-undef", findings[0].Code)
	assert.Equal(t, domain.SeverityWarning, findings[1].Severity)
	assert.Equal(t, 5, findings[1].Line)
}

func TestAvailable(t *testing.T) {
	assert.True(t, Available("sh"))
	assert.False(t, Available("definitely-not-a-real-tool"))
}

func TestNewOracles_CoversBothLanguages(t *testing.T) {
	oracles := NewOracles(domain.DefaultConfig())

	assert.NotNil(t, oracles.Syntax[domain.LanguagePython])
	assert.NotNil(t, oracles.Syntax[domain.LanguageJavaScript])
	assert.NotNil(t, oracles.Lint[domain.LanguagePython])
	assert.NotNil(t, oracles.Lint[domain.LanguageJavaScript])
	assert.NotNil(t, oracles.SecurityLint[domain.LanguagePython])
	assert.Nil(t, oracles.SecurityLint[domain.LanguageJavaScript])
}
