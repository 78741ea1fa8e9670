package langtable

import "testing"

func TestForFilenameKnown(t *testing.T) {
	tcs := []struct {
		filename string
		lang     Language
	}{
		{filename: "main.go", lang: LanguageGo},
		{filename: "lessons/01-intro/step.js", lang: LanguageJavaScript},
		{filename: "component.TSX", lang: LanguageTypeScript},
		{filename: "handler.py", lang: LanguagePython},
		{filename: "lib.rs", lang: LanguageRust},
		{filename: "main.c", lang: LanguageC},
		{filename: "main.cpp", lang: LanguageCpp},
		{filename: "Program.cs", lang: LanguageCSharp},
		{filename: "query.sql", lang: LanguageSQL},
		{filename: "ci.yml", lang: LanguageYAML},
	}

	for _, tc := range tcs {
		t.Run(tc.filename, func(t *testing.T) {
			if got := ForFilename(tc.filename); got != tc.lang {
				t.Fatalf("expected %q, got %q", tc.lang, got)
			}
		})
	}
}

func TestForFilenameChromaFallback(t *testing.T) {
	if got := ForFilename("Dockerfile"); got == LanguageUnknown {
		t.Fatalf("expected chroma to recognize Dockerfile")
	}
}

func TestForFilenameUnknown(t *testing.T) {
	if got := ForFilename("notes.zzqq"); got != LanguageUnknown {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestCommentMarker(t *testing.T) {
	tables := Default()

	if got := tables.CommentMarker(LanguageJavaScript); got != "//" {
		t.Fatalf("JavaScript: expected //, got %q", got)
	}
	if got := tables.CommentMarker(LanguagePython); got != "#" {
		t.Fatalf("Python: expected #, got %q", got)
	}
	if got := tables.CommentMarker(LanguageUnknown); got != DefaultCommentMarker {
		t.Fatalf("unknown: expected default, got %q", got)
	}
	if got := tables.CommentMarker("Brainfuck"); got != DefaultCommentMarker {
		t.Fatalf("unlisted: expected default, got %q", got)
	}

	var nilTables *Tables
	if got := nilTables.CommentMarker(LanguageGo); got != "//" {
		t.Fatalf("nil tables: expected //, got %q", got)
	}
}

func TestHighlighter(t *testing.T) {
	tables := Default()
	if got := tables.Highlighter(LanguageTypeScript); got != "typescript" {
		t.Fatalf("expected typescript, got %q", got)
	}
	if got := tables.Highlighter(LanguageUnknown); got != DefaultHighlighter {
		t.Fatalf("expected default highlighter, got %q", got)
	}
}

func TestWithOverrides(t *testing.T) {
	base := Default()
	over := base.WithOverrides(
		map[string]string{"Python": ";;", "Elixir": "#", "": "x", "Go": ""},
		map[string]string{"Elixir": "elixir"},
	)

	if got := over.CommentMarker(LanguagePython); got != ";;" {
		t.Fatalf("override: expected ;;, got %q", got)
	}
	if got := over.CommentMarker(LanguageGo); got != "//" {
		t.Fatalf("empty override must be ignored, got %q", got)
	}
	if got := over.Highlighter("Elixir"); got != "elixir" {
		t.Fatalf("expected elixir, got %q", got)
	}
	if got := base.CommentMarker(LanguagePython); got != "#" {
		t.Fatalf("base tables must be unchanged, got %q", got)
	}
}
