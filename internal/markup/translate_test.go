package markup

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "bare text",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "bold element",
			input:    "hello <b>world</b>",
			expected: "hello <b>world</b>",
		},
		{
			name:     "strong maps to bold",
			input:    "<strong>loud</strong>",
			expected: "<b>loud</b>",
		},
		{
			name:     "em maps to italic",
			input:    "<em>soft</em>",
			expected: "<i>soft</i>",
		},
		{
			name:     "underline",
			input:    "<u>under</u>",
			expected: "<u>under</u>",
		},
		{
			name:     "nested marks inside bold are flattened",
			input:    "<b>foo<i>bar</i></b>",
			expected: "<b>foobar</b>",
		},
		{
			name:     "nested marks inside italic are flattened",
			input:    "<i>a<u>b</u>c</i>",
			expected: "<i>abc</i>",
		},
		{
			name:     "line break",
			input:    "one<br>two",
			expected: "one<br/>two",
		},
		{
			name:     "first paragraph adds no break",
			input:    "<p>only</p>",
			expected: "only",
		},
		{
			name:     "paragraph boundaries collapse to single breaks",
			input:    "<p>one</p><p>two</p><p>three</p>",
			expected: "one<br/>two<br/>three",
		},
		{
			name:     "formatting inside paragraphs survives",
			input:    "<p>hello <b>world</b></p><p><i>again</i></p>",
			expected: "hello <b>world</b><br/><i>again</i>",
		},
		{
			name:     "unknown element keeps only its text",
			input:    "<span>a<b>c</b></span>",
			expected: "ac",
		},
		{
			name:     "ampersand is escaped",
			input:    "fish & chips",
			expected: "fish &amp; chips",
		},
		{
			name:     "angle brackets in text are escaped",
			input:    "<b>a &lt; b</b>",
			expected: "<b>a &lt; b</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.input)
			if got != tt.expected {
				t.Fatalf("Translate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapePlain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text unchanged",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "specials escaped",
			input:    "a < b & c > d",
			expected: "a &lt; b &amp; c &gt; d",
		},
		{
			name:     "markup is treated as literal text",
			input:    "<b>not bold</b>",
			expected: "&lt;b&gt;not bold&lt;/b&gt;",
		},
		{
			name:     "newlines become breaks",
			input:    "one\ntwo\r\nthree",
			expected: "one<br/>two<br/>three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapePlain(tt.input)
			if got != tt.expected {
				t.Fatalf("EscapePlain(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestModeRender(t *testing.T) {
	if got := ModePlain.Render("a <b>b</b>"); got != "a &lt;b&gt;b&lt;/b&gt;" {
		t.Fatalf("plain render = %q", got)
	}
	if got := ModeRich.Render("a <b>b</b>"); got != "a <b>b</b>" {
		t.Fatalf("rich render = %q", got)
	}
	if got := ModeMarkup.Render("a <b>b</b> &amp; c"); got != "a <b>b</b> &amp; c" {
		t.Fatalf("markup render = %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "plain", "Plain"} {
		m, err := ParseMode(s)
		if err != nil || m != ModePlain {
			t.Fatalf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	for _, s := range []string{"rich", "html", "RICH"} {
		m, err := ParseMode(s)
		if err != nil || m != ModeRich {
			t.Fatalf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if m, err := ParseMode("markup"); err != nil || m != ModeMarkup {
		t.Fatalf("ParseMode(markup) = %v, %v", m, err)
	}
	if _, err := ParseMode("markdown"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
