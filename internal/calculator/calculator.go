// Package calculator evaluates the arithmetic typed into the practice
// screen's calculator widget.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrDivisionByZero is returned when an expression divides by zero.
var ErrDivisionByZero = errors.New("division by zero")

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Pos int // byte offset into the normalized expression
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos+1, e.Msg)
}

// Entry is one evaluated line of the calculator history.
type Entry struct {
	Expr   string
	Result string
	Err    error
}

// Calculator keeps the most recent evaluations.
type Calculator struct {
	history []Entry
	max     int
}

// New creates a calculator remembering up to max entries.
func New(max int) *Calculator {
	if max < 1 {
		max = 1
	}
	return &Calculator{max: max}
}

// Evaluate computes expr and records it in the history. Blank input is
// ignored and returns a zero Entry.
func (c *Calculator) Evaluate(expr string) Entry {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Entry{}
	}
	e := Entry{Expr: expr}
	v, err := Eval(expr)
	if err != nil {
		e.Err = err
	} else {
		e.Result = Format(v)
	}
	c.history = append(c.history, e)
	if len(c.history) > c.max {
		c.history = c.history[len(c.history)-c.max:]
	}
	return e
}

// History returns the recorded entries, oldest first.
func (c *Calculator) History() []Entry {
	return append([]Entry(nil), c.history...)
}

// Last returns the newest entry.
func (c *Calculator) Last() (Entry, bool) {
	if len(c.history) == 0 {
		return Entry{}, false
	}
	return c.history[len(c.history)-1], true
}

// Clear drops the history.
func (c *Calculator) Clear() { c.history = nil }

// Format renders v without trailing zeros, rounding away float noise.
func Format(v float64) string {
	if v == 0 {
		return "0"
	}
	r := strconv.FormatFloat(v, 'g', 12, 64)
	if strings.ContainsAny(r, "e") {
		return r
	}
	f, _ := strconv.ParseFloat(r, 64)
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Eval evaluates an arithmetic expression supporting + - * / ^, parentheses,
// unary minus, decimals and the constant pi. × and ÷ are accepted as
// operators and ^ is right-associative.
func Eval(expr string) (float64, error) {
	p := &parser{src: normalize(expr)}
	p.skipSpace()
	if p.done() {
		return 0, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if !p.done() {
		return 0, &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf("unexpected %q", p.src[p.pos])}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.New("result is not a finite number")
	}
	return v, nil
}

// normalize maps display operators to their ASCII forms.
func normalize(expr string) string {
	return strings.NewReplacer("×", "*", "÷", "/", "π", "pi", "−", "-").Replace(expr)
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.done() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

// peek returns the next non-space byte, or 0 at the end.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			p.pos++
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= r
		case '/':
			p.pos++
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, ErrDivisionByZero
			}
			v /= r
		default:
			return v, nil
		}
	}
}

// unary := ('-' | '+') unary | power
func (p *parser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.power()
}

// power := primary ('^' unary)?
func (p *parser) power() (float64, error) {
	base, err := p.primary()
	if err != nil {
		return 0, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	exp, err := p.unary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

// primary := number | 'pi' | '(' expr ')'
func (p *parser) primary() (float64, error) {
	c := p.peek()
	switch {
	case c == 0:
		return 0, &SyntaxError{Pos: p.pos, Msg: "unexpected end of expression"}
	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, &SyntaxError{Pos: p.pos, Msg: "missing )"}
		}
		p.pos++
		return v, nil
	case strings.HasPrefix(p.src[p.pos:], "pi"):
		p.pos += 2
		return math.Pi, nil
	case c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	}
	return 0, &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf("unexpected %q", c)}
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for !p.done() && (p.src[p.pos] == '.' || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, &SyntaxError{Pos: start, Msg: fmt.Sprintf("bad number %q", p.src[start:p.pos])}
	}
	return v, nil
}
