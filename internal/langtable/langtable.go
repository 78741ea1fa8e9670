// Package langtable holds the static language tables the replay pipeline consults: which language a file is written in, which single-line comment marker
// that language uses, and which syntax-highlighter name a renderer should use for it.
//
// Lookups never fail. Unknown languages get DefaultCommentMarker and DefaultHighlighter.
package langtable

import (
	"maps"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Language is a language's display name (ex: "Go", "JavaScript"). Names follow chroma's lexer names so that languages found through the chroma fallback line up
// with the static tables.
type Language string

const (
	LanguageUnknown    Language = ""
	LanguageGo         Language = "Go"
	LanguageJavaScript Language = "JavaScript"
	LanguageTypeScript Language = "TypeScript"
	LanguagePython     Language = "Python"
	LanguageRuby       Language = "Ruby"
	LanguageRust       Language = "Rust"
	LanguageJava       Language = "Java"
	LanguageC          Language = "C"
	LanguageCpp        Language = "C++"
	LanguageCSharp     Language = "C#"
	LanguagePHP        Language = "PHP"
	LanguageSwift      Language = "Swift"
	LanguageKotlin     Language = "Kotlin"
	LanguageScala      Language = "Scala"
	LanguageObjectiveC Language = "Objective-C"
	LanguageBash       Language = "Bash"
	LanguageYAML       Language = "YAML"
	LanguageTOML       Language = "TOML"
	LanguageSQL        Language = "SQL"
	LanguageLua        Language = "Lua"
	LanguageHaskell    Language = "Haskell"
)

const (
	// DefaultCommentMarker is the comment marker for languages missing from the comment table.
	DefaultCommentMarker = "#"

	// DefaultHighlighter is the highlighter name for languages missing from the highlighter table.
	DefaultHighlighter = "javascript"
)

var extToLanguage = map[string]Language{
	".go":    LanguageGo,
	".js":    LanguageJavaScript,
	".mjs":   LanguageJavaScript,
	".cjs":   LanguageJavaScript,
	".jsx":   LanguageJavaScript,
	".ts":    LanguageTypeScript,
	".tsx":   LanguageTypeScript,
	".py":    LanguagePython,
	".rb":    LanguageRuby,
	".rs":    LanguageRust,
	".java":  LanguageJava,
	".c":     LanguageC,
	".h":     LanguageC,
	".cpp":   LanguageCpp,
	".cc":    LanguageCpp,
	".cxx":   LanguageCpp,
	".hpp":   LanguageCpp,
	".hh":    LanguageCpp,
	".hxx":   LanguageCpp,
	".cs":    LanguageCSharp,
	".csx":   LanguageCSharp,
	".php":   LanguagePHP,
	".phtml": LanguagePHP,
	".swift": LanguageSwift,
	".kt":    LanguageKotlin,
	".kts":   LanguageKotlin,
	".scala": LanguageScala,
	".m":     LanguageObjectiveC,
	".mm":    LanguageObjectiveC,
	".sh":    LanguageBash,
	".bash":  LanguageBash,
	".yaml":  LanguageYAML,
	".yml":   LanguageYAML,
	".toml":  LanguageTOML,
	".sql":   LanguageSQL,
	".lua":   LanguageLua,
	".hs":    LanguageHaskell,
}

var commentMarkers = map[Language]string{
	LanguageGo:         "//",
	LanguageJavaScript: "//",
	LanguageTypeScript: "//",
	LanguagePython:     "#",
	LanguageRuby:       "#",
	LanguageRust:       "//",
	LanguageJava:       "//",
	LanguageC:          "//",
	LanguageCpp:        "//",
	LanguageCSharp:     "//",
	LanguagePHP:        "//",
	LanguageSwift:      "//",
	LanguageKotlin:     "//",
	LanguageScala:      "//",
	LanguageObjectiveC: "//",
	LanguageBash:       "#",
	LanguageYAML:       "#",
	LanguageTOML:       "#",
	LanguageSQL:        "--",
	LanguageLua:        "--",
	LanguageHaskell:    "--",
}

var highlighters = map[Language]string{
	LanguageGo:         "go",
	LanguageJavaScript: "javascript",
	LanguageTypeScript: "typescript",
	LanguagePython:     "python",
	LanguageRuby:       "ruby",
	LanguageRust:       "rust",
	LanguageJava:       "java",
	LanguageC:          "c",
	LanguageCpp:        "cpp",
	LanguageCSharp:     "csharp",
	LanguagePHP:        "php",
	LanguageSwift:      "swift",
	LanguageKotlin:     "kotlin",
	LanguageScala:      "scala",
	LanguageObjectiveC: "objectivec",
	LanguageBash:       "bash",
	LanguageYAML:       "yaml",
	LanguageTOML:       "ini",
	LanguageSQL:        "sql",
	LanguageLua:        "lua",
	LanguageHaskell:    "haskell",
}

// ForFilename returns the language of the file named name (a base name or a path). The static extension table wins; files it does not cover (ex: "Dockerfile",
// ".vue") are matched against chroma's lexer filename patterns. LanguageUnknown is returned when neither knows the file.
func ForFilename(name string) Language {
	if lang, ok := extToLanguage[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	if lexer := lexers.Match(filepath.Base(name)); lexer != nil {
		return Language(lexer.Config().Name)
	}
	return LanguageUnknown
}

// Tables maps languages to their comment marker and highlighter name. A nil *Tables behaves like Default().
type Tables struct {
	CommentMarkers map[Language]string
	Highlighters   map[Language]string
}

// Default returns a copy of the built-in tables.
func Default() *Tables {
	return &Tables{
		CommentMarkers: maps.Clone(commentMarkers),
		Highlighters:   maps.Clone(highlighters),
	}
}

// WithOverrides returns a copy of t with the given entries layered on top, keyed by language name. Entries with an empty language name or an empty value are
// ignored.
func (t *Tables) WithOverrides(markers, highlighterNames map[string]string) *Tables {
	base := t
	if base == nil {
		base = Default()
	}
	out := &Tables{
		CommentMarkers: maps.Clone(base.CommentMarkers),
		Highlighters:   maps.Clone(base.Highlighters),
	}
	if out.CommentMarkers == nil {
		out.CommentMarkers = map[Language]string{}
	}
	if out.Highlighters == nil {
		out.Highlighters = map[Language]string{}
	}
	for name, marker := range markers {
		if name != "" && marker != "" {
			out.CommentMarkers[Language(name)] = marker
		}
	}
	for name, h := range highlighterNames {
		if name != "" && h != "" {
			out.Highlighters[Language(name)] = h
		}
	}
	return out
}

// CommentMarker returns lang's single-line comment marker, or DefaultCommentMarker.
func (t *Tables) CommentMarker(lang Language) string {
	m := commentMarkers
	if t != nil {
		m = t.CommentMarkers
	}
	if marker, ok := m[lang]; ok && marker != "" {
		return marker
	}
	return DefaultCommentMarker
}

// Highlighter returns the highlighter name for lang, or DefaultHighlighter.
func (t *Tables) Highlighter(lang Language) string {
	m := highlighters
	if t != nil {
		m = t.Highlighters
	}
	if h, ok := m[lang]; ok && h != "" {
		return h
	}
	return DefaultHighlighter
}
