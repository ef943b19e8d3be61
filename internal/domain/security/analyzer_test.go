package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// fakeAntivirus returns a canned verdict or error.
type fakeAntivirus struct {
	verdict domain.ScanVerdict
	err     error
}

func (f *fakeAntivirus) Scan(ctx context.Context, content []byte) (domain.ScanVerdict, error) {
	return f.verdict, f.err
}

func file(name, content string) domain.FileInfo {
	return domain.FileInfo{Name: name, Size: int64(len(content)), Content: []byte(content)}
}

func TestScan_CleanFile(t *testing.T) {
	a := NewAnalyzer(&fakeAntivirus{}, time.Second)

	score, issues := a.Scan(context.Background(), file("main.py", `def add(a, b):
    return a + b
`))
	assert.Equal(t, 100, score)
	assert.Empty(t, issues)
}

func TestScan_MalwareForcesZero(t *testing.T) {
	av := &fakeAntivirus{verdict: domain.ScanVerdict{Infected: true, Signature: "Eicar-Test-Signature"}}
	a := NewAnalyzer(av, time.Second)

	score, issues := a.Scan(context.Background(), file("clean_looking.py", "print('hi')\n"))
	assert.Equal(t, 0, score)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Equal(t, "clamav_scan", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "Eicar-Test-Signature")
}

func TestScan_AntivirusTimeout(t *testing.T) {
	av := &fakeAntivirus{err: context.DeadlineExceeded}
	a := NewAnalyzer(av, time.Second)

	score, issues := a.Scan(context.Background(), file("notes.txt", "hello"))
	assert.Equal(t, 95, score)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "antivirus_timeout", issues[0].Rule)
}

func TestScan_AntivirusUnreachableIsSkipped(t *testing.T) {
	av := &fakeAntivirus{err: domain.ErrOracleUnavailable}
	a := NewAnalyzer(av, time.Second)

	score, issues := a.Scan(context.Background(), file("notes.txt", "hello"))
	assert.Equal(t, 100, score)
	assert.Empty(t, issues)
}

func TestScan_NilAntivirusSkipsMalwareStage(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	score, issues := a.Scan(context.Background(), file("notes.txt", "hello"))
	assert.Equal(t, 100, score)
	assert.Empty(t, issues)
}

func TestScan_DangerousExtension(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	score, issues := a.Scan(context.Background(), file("payload.exe", "harmless text"))
	assert.Equal(t, 80, score)
	require.Len(t, issues, 1)
	assert.Equal(t, "file_type_validation", issues[0].Rule)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
}

func TestScan_ExecutableSignature(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	score, issues := a.Scan(context.Background(), file("innocent.bin", "MZ\x90\x00binary"))
	assert.Equal(t, 80, score)
	require.Len(t, issues, 1)
	assert.Equal(t, "file_signature_check", issues[0].Rule)
}

func TestScan_FileTypeDeductionAppliesOnce(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	// Dangerous extension AND executable signature: two issues, one deduction.
	score, issues := a.Scan(context.Background(), file("payload.exe", "MZ\x90\x00"))
	assert.Equal(t, 80, score)
	assert.Len(t, issues, 2)
}

func TestScan_ContentPatterns(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	source := `import pickle
data = pickle.loads(blob)
eval(user_input)
`
	score, issues := a.Scan(context.Background(), file("risky.py", source))
	// pickle.loads is an error (30), eval a warning (10).
	assert.Equal(t, 60, score)
	require.Len(t, issues, 2)
	for _, iss := range issues {
		assert.Equal(t, "content_pattern_scan", iss.Rule)
		assert.Contains(t, iss.Message, "occurrences")
	}
}

func TestScan_ContentDeductionCapped(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	// Every pattern family triggers: 30 + 10*3 + 2*3 = 66, capped at 50.
	source := `pickle.loads(x)
eval(x)
exec(x)
os.system(x)
__import__("os")
requests.get(url)
base64.b64decode(x)
`
	score, issues := a.Scan(context.Background(), file("kitchen_sink.py", source))
	assert.Equal(t, 50, score)
	assert.Len(t, issues, 7)
}

func TestScan_ContentStageSkipsBinaryExtensions(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	score, issues := a.Scan(context.Background(), file("model.bin", "eval( exec("))
	assert.Equal(t, 100, score)
	assert.Empty(t, issues)
}

func TestScan_TinyCodeFile(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	score, issues := a.Scan(context.Background(), file("stub.py", "x=1"))
	assert.Equal(t, 98, score)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityInfo, issues[0].Severity)
	assert.Equal(t, "file_size_check", issues[0].Rule)
}

func TestScan_LargeFile(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)

	// Size metadata drives the check; content stays small.
	f := domain.FileInfo{Name: "dump.txt", Size: 150 * 1024 * 1024, Content: []byte("data")}
	score, issues := a.Scan(context.Background(), f)
	assert.Equal(t, 95, score)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "Large file size")
}
