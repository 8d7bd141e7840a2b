// Package calc evaluates the four-function arithmetic typed into the calculator.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDivideByZero is returned when an expression divides by zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrMalformed is returned for anything that is not digits and + - * /.
	ErrMalformed = errors.New("malformed expression")

	// ErrOverflow is returned when a result is too large to show.
	ErrOverflow = errors.New("result out of range")
)

// Eval evaluates expr. It accepts decimal numbers (optionally with the
// e±N exponent Format writes for large results), + - * / (also × and ÷)
// with the usual precedence, unary minus and whitespace.
func Eval(expr string) (float64, error) {
	p := &parser{src: normalize(expr)}
	p.skipSpace()
	if p.done() {
		return 0, fmt.Errorf("%w: empty", ErrMalformed)
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if !p.done() {
		return 0, p.errorf("unexpected %q", p.src[p.pos])
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrOverflow
	}
	return v, nil
}

// Format renders a result the way the display shows it.
func Format(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func normalize(s string) string {
	return strings.NewReplacer("×", "*", "÷", "/", "−", "-").Replace(s)
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %d: %s", ErrMalformed, p.pos, fmt.Sprintf(format, args...))
}

// expr := term (('+'|'-') term)*
func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return v, nil
		}
		p.pos++
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

// term := unary (('*'|'/') unary)*
func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return v, nil
		}
		p.pos++
		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
			continue
		}
		if rhs == 0 {
			return 0, ErrDivideByZero
		}
		v /= rhs
	}
}

// unary := '-' unary | number
func (p *parser) unary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.unary()
		return -v, err
	}
	return p.number()
}

func (p *parser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	dot := false
	for !p.done() {
		c := p.src[p.pos]
		if c == '.' {
			if dot {
				return 0, p.errorf("second decimal point")
			}
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	if lit := p.src[start:p.pos]; lit != "" && lit != "." {
		p.pos += p.exponentLen()
	}
	lit := p.src[start:p.pos]
	if lit == "" || lit == "." {
		if p.done() {
			return 0, p.errorf("expected number")
		}
		return 0, p.errorf("expected number, got %q", p.src[p.pos])
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, p.errorf("bad number %q", lit)
	}
	return v, nil
}

// exponentLen returns the length of an e±N suffix at the current position,
// or 0 when there is none.
func (p *parser) exponentLen() int {
	i := p.pos
	if i >= len(p.src) || (p.src[i] != 'e' && p.src[i] != 'E') {
		return 0
	}
	i++
	if i < len(p.src) && (p.src[i] == '+' || p.src[i] == '-') {
		i++
	}
	digits := i
	for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	return i - p.pos
}
