package richtext

import (
	"strings"
	"testing"
)

func TestInlineEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"snake_case_name stays", "snake_case_name stays"},
	}
	for _, tt := range tests {
		got := string(Inline(tt.input))
		if got != tt.expected {
			t.Errorf("Inline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestInlineEscapesHTML(t *testing.T) {
	got := string(Inline(`<script>alert("x")</script>`))
	if strings.Contains(got, "<script>") {
		t.Errorf("Inline did not escape markup: %q", got)
	}
}

func TestInlineCodeIsNotFormatted(t *testing.T) {
	got := string(Inline("run `a*b*c` now"))
	want := "run <code>a*b*c</code> now"
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[paper](https://example.com/a_b_c)", `<a href="https://example.com/a_b_c">paper</a>`},
		{"[code](https://github.com/x)^", `<a href="https://github.com/x" target="_blank" rel="noopener noreferrer">code</a>`},
		{"[local](/publications)", `<a href="/publications">local</a>`},
		{"[bad](javascript:alert(1))", "bad)"},
	}
	for _, tt := range tests {
		got := string(Inline(tt.input))
		if got != tt.expected {
			t.Errorf("Inline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParagraphs(t *testing.T) {
	got := string(Paragraphs("first line\nsecond\n\n\nnext **block**"))
	want := "<p>first line<br>second</p><p>next <strong>block</strong></p>"
	if got != want {
		t.Errorf("Paragraphs = %q, want %q", got, want)
	}
	if got := Paragraphs("   "); got != "" {
		t.Errorf("Paragraphs(blank) = %q, want empty", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"https://x.org":       "https://x.org",
		"mailto:a@b.c":        "mailto:a@b.c",
		"/local":              "/local",
		"ftp://x.org":         "",
		"javascript:alert(1)": "",
		"no-scheme.example":   "",
	}
	for in, want := range tests {
		if got := SafeURL(in); got != want {
			t.Errorf("SafeURL(%q) = %q, want %q", in, got, want)
		}
	}
}
