package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
		ok   bool
	}{
		{".py", LanguagePython, true},
		{".js", LanguageJavaScript, true},
		{".jsx", LanguageJavaScript, true},
		{".PY", LanguagePython, true},
		{".rb", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		spec, ok := LanguageForExtension(tt.ext)
		assert.Equal(t, tt.ok, ok, "extension %q", tt.ext)
		if ok {
			assert.Equal(t, tt.want, spec.Name)
		}
	}
}

func TestLanguageByName(t *testing.T) {
	spec, ok := LanguageByName("Python")
	require.True(t, ok)
	assert.Equal(t, LanguagePython, spec.Name)
	assert.True(t, spec.HasSecurityLinter)

	spec, ok = LanguageByName("javascript")
	require.True(t, ok)
	assert.False(t, spec.HasSecurityLinter)

	_, ok = LanguageByName("cobol")
	assert.False(t, ok)
}

func TestCountComments_Python(t *testing.T) {
	spec, _ := LanguageByName("python")
	source := `"""Module docstring."""

def f():
    """Function docstring."""
    return 1  # inline comment

# standalone comment
`
	docs, lines := spec.CountComments(source)
	assert.Equal(t, 2, docs)
	assert.Equal(t, 2, lines)
}

func TestCountComments_JavaScript(t *testing.T) {
	spec, _ := LanguageByName("javascript")
	source := `/** Doc block. */
function f() {
  // line comment
  return 1;
}
`
	docs, lines := spec.CountComments(source)
	assert.Equal(t, 1, docs)
	assert.Equal(t, 1, lines)
}

func TestDefaultExtension(t *testing.T) {
	spec, _ := LanguageByName("javascript")
	assert.Equal(t, ".js", spec.DefaultExtension())
}
