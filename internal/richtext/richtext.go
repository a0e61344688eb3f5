// Package richtext turns the lightly marked-up text of the question bank
// into plain terminal text.
package richtext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sentenceStart = regexp.MustCompile(`(^\w|\.\s+\w)`)

// Render applies Format and then Latex.
func Render(text string) string {
	return Latex(Format(text))
}

// Format strips markdown emphasis asterisks and turns text written entirely
// in capitals into sentence case.
func Format(text string) string {
	text = strings.ReplaceAll(text, "*", "")
	if text == strings.ToUpper(text) && text != strings.ToLower(text) {
		text = strings.ToLower(text)
		text = sentenceStart.ReplaceAllStringFunc(text, strings.ToUpper)
	}
	return text
}

// escapedDollar stands in for \$ while math spans are located.
const escapedDollar = "\x00"

// Latex renders every inline $...$ span as Unicode. An escaped \$ is a
// literal dollar sign, and an unmatched $ is left as is.
func Latex(text string) string {
	text = strings.ReplaceAll(text, `\$`, escapedDollar)

	var b strings.Builder
	for {
		start := strings.IndexByte(text, '$')
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start+1:], '$')
		if end < 0 {
			break
		}
		b.WriteString(text[:start])
		b.WriteString(strings.TrimSpace(renderMath(text[start+1 : start+1+end])))
		text = text[start+1+end+1:]
	}
	b.WriteString(text)

	return strings.ReplaceAll(b.String(), escapedDollar, "$")
}

// Longer commands come first so that \left is not read as \le.
var symbols = strings.NewReplacer(
	`\left`, "",
	`\right`, "",
	`\times`, "×",
	`\cdot`, "·",
	`\div`, "÷",
	`\pm`, "±",
	`\leq`, "≤",
	`\geq`, "≥",
	`\neq`, "≠",
	`\le`, "≤",
	`\ge`, "≥",
	`\ne`, "≠",
	`\pi`, "π",
	`\theta`, "θ",
	`\infty`, "∞",
	`\circ`, "°",
	`\degree`, "°",
	`\,`, " ",
	`\;`, " ",
	`\%`, "%",
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', 'n': 'ⁿ', 'x': 'ˣ',
}

// renderMath converts the body of one math span.
func renderMath(s string) string {
	s = replaceCommand(s, `\text`, 1, func(args []string) string { return args[0] })
	s = replaceCommand(s, `\dfrac`, 2, fraction)
	s = replaceCommand(s, `\frac`, 2, fraction)
	s = replaceCommand(s, `\sqrt`, 1, func(args []string) string { return "√" + group(args[0]) })
	s = symbols.Replace(s)
	s = renderPowers(s)
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

func fraction(args []string) string {
	return group(args[0]) + "/" + group(args[1])
}

// group wraps s in parentheses unless it is a single term.
func group(s string) string {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && !strings.ContainsRune("²³√π", r) {
			return "(" + s + ")"
		}
	}
	return s
}

// replaceCommand replaces every occurrence of cmd followed by n brace
// groups with render(args). Nested braces inside a group are kept.
func replaceCommand(s, cmd string, n int, render func([]string) string) string {
	for {
		i := strings.Index(s, cmd+"{")
		if i < 0 {
			return s
		}
		pos := i + len(cmd)
		args := make([]string, 0, n)
		for len(args) < n {
			arg, next, ok := braceGroup(s, pos)
			if !ok {
				return s
			}
			args = append(args, renderMath(arg))
			pos = next
		}
		s = s[:i] + render(args) + s[pos:]
	}
}

// braceGroup reads the {...} group starting at s[pos] and returns its
// contents and the index just past the closing brace.
func braceGroup(s string, pos int) (string, int, bool) {
	if pos >= len(s) || s[pos] != '{' {
		return "", pos, false
	}
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[pos+1 : i], i + 1, true
			}
		}
	}
	return "", pos, false
}

// renderPowers rewrites ^d and ^{...} as superscripts when every character
// has a superscript form, and as ^(...) otherwise.
func renderPowers(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '^' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i+1:])
		exp, next := s[i+1:i+1+size], i+1+size
		if s[i+1] == '{' {
			if arg, end, ok := braceGroup(s, i+1); ok {
				exp, next = arg, end
			}
		}
		if sup, ok := superscript(exp); ok {
			b.WriteString(sup)
		} else {
			b.WriteString("^(" + exp + ")")
		}
		i = next - 1
	}
	return b.String()
}

func superscript(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	var b strings.Builder
	for _, r := range s {
		sup, ok := superscripts[r]
		if !ok {
			return "", false
		}
		b.WriteRune(sup)
	}
	return b.String(), true
}
