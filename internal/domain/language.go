package domain

import (
	"regexp"
	"strings"
)

// Language identifies a supported programming language.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
)

// LanguageSpec is the capability record for one language: which extensions
// resolve to it, whether a dedicated security linter exists for it, and how
// its comments look for documentation-ratio analysis.
type LanguageSpec struct {
	Name              Language
	Extensions        []string
	HasSecurityLinter bool

	docComment  *regexp.Regexp
	lineComment *regexp.Regexp
}

// CountComments returns the number of doc comments (docstrings or block doc
// comments) and line comments in source.
func (s *LanguageSpec) CountComments(source string) (docs, lines int) {
	if s.docComment != nil {
		docs = len(s.docComment.FindAllString(source, -1))
	}
	if s.lineComment != nil {
		lines = len(s.lineComment.FindAllString(source, -1))
	}
	return docs, lines
}

var languageSpecs = []*LanguageSpec{
	{
		Name:              LanguagePython,
		Extensions:        []string{".py"},
		HasSecurityLinter: true,
		docComment:        regexp.MustCompile(`(?s)""".*?"""`),
		lineComment:       regexp.MustCompile(`(?m)#.*$`),
	},
	{
		Name:              LanguageJavaScript,
		Extensions:        []string{".js", ".jsx"},
		HasSecurityLinter: false,
		docComment:        regexp.MustCompile(`(?s)/\*\*.*?\*/`),
		lineComment:       regexp.MustCompile(`(?m)//.*$`),
	},
}

// extensionIndex is the immutable extension → language lookup table,
// resolved once at startup.
var extensionIndex = func() map[string]*LanguageSpec {
	idx := make(map[string]*LanguageSpec)
	for _, spec := range languageSpecs {
		for _, ext := range spec.Extensions {
			idx[ext] = spec
		}
	}
	return idx
}()

// LanguageForExtension resolves a file extension (".py") to its language
// spec. The second return is false for unrecognized extensions.
func LanguageForExtension(ext string) (*LanguageSpec, bool) {
	spec, ok := extensionIndex[strings.ToLower(ext)]
	return spec, ok
}

// LanguageByName resolves a language name ("python") to its spec.
func LanguageByName(name string) (*LanguageSpec, bool) {
	for _, spec := range languageSpecs {
		if string(spec.Name) == strings.ToLower(name) {
			return spec, true
		}
	}
	return nil, false
}

// SupportedLanguages lists all recognized languages.
func SupportedLanguages() []Language {
	names := make([]Language, 0, len(languageSpecs))
	for _, spec := range languageSpecs {
		names = append(names, spec.Name)
	}
	return names
}

// DefaultExtension returns the canonical file extension for a language.
func (s *LanguageSpec) DefaultExtension() string {
	return s.Extensions[0]
}
