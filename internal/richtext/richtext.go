// Package richtext formats the short prose fields of the portfolio (about
// paragraphs, news items, abstracts). It understands a small inline subset
// of Markdown: **bold**, *italic*, `code`, [links](url) and [new tab](url)^.
// Everything else is escaped.
package richtext

import (
	"html"
	"html/template"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnder   = regexp.MustCompile(`__(.+?)__`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnder = regexp.MustCompile(`(^|\s)_([^_]+)_`)
	reCode        = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
)

// Inline formats a single line of text.
func Inline(s string) template.HTML {
	return template.HTML(format(s))
}

// Paragraphs splits s on blank lines and formats each block as a <p>.
// Single newlines inside a block become <br>.
func Paragraphs(s string) template.HTML {
	var b strings.Builder
	for _, block := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i := range lines {
			lines[i] = format(strings.TrimSpace(lines[i]))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}

func format(s string) string {
	escaped := html.EscapeString(s)

	// Code spans are swapped for placeholders so emphasis never reaches them.
	var codes []string
	escaped = reCode.ReplaceAllStringFunc(escaped, func(m string) string {
		inner := reCode.FindStringSubmatch(m)[1]
		codes = append(codes, "<code>"+inner+"</code>")
		return "\x00C" + strconv.Itoa(len(codes)-1) + "\x00"
	})

	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if match[3] == "^" {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})

	escaped = outsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnder.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnder.ReplaceAllString(seg, "$1<em>$2</em>")
		return seg
	})

	for i, c := range codes {
		escaped = strings.Replace(escaped, "\x00C"+strconv.Itoa(i)+"\x00", c, 1)
	}
	return escaped
}

// outsideTags applies fn to the text between HTML tags only, so that link
// targets are left untouched.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for len(s) > 0 {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an attribute when it is a relative path or
// an http, https or mailto URL, and "" otherwise.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	u, err := url.Parse(val)
	if err != nil || u.Scheme == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	}
	return ""
}
