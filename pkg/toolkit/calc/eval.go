package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Eval parses and evaluates a single arithmetic expression. The grammar is a
// closed mini-language — numbers, + - * / % ^ (and ** as an alias), parens,
// unary minus, and the whitelisted functions and constants below. There is no
// dynamic evaluation anywhere, so there is nothing to sandbox: an identifier
// outside the whitelist is a parse-time error, never code execution.
func Eval(expr string) (float64, error) {
	p := &parser{input: expr}
	p.next()

	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	if p.tok.kind != tokEOF {
		return 0, fmt.Errorf("unexpected %q", p.tok.text)
	}

	return v, nil
}

// Whitelisted names. The "math." prefix is accepted and stripped so inputs
// like "math.sqrt(16)" evaluate the same as "sqrt(16)".
var (
	functions = map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"abs":   math.Abs,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"log":   math.Log,
		"log2":  math.Log2,
		"log10": math.Log10,
		"exp":   math.Exp,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
	}

	functions2 = map[string]func(float64, float64) float64{
		"pow": math.Pow,
		"min": math.Min,
		"max": math.Max,
	}

	constants = map[string]float64{
		"pi":  math.Pi,
		"e":   math.E,
		"tau": 2 * math.Pi,
	}
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokKind
	text string
	num  float64
}

type parser struct {
	input string
	pos   int
	tok   token
}

// next advances to the following token.
func (p *parser) next() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}

	if p.pos >= len(p.input) {
		p.tok = token{kind: tokEOF, text: "end of expression"}
		return
	}

	c := p.input[p.pos]

	switch {
	case c >= '0' && c <= '9' || c == '.':
		p.tok = p.scanNumber()
	case isIdentStart(c):
		p.tok = p.scanIdent()
	case c == '(':
		p.pos++
		p.tok = token{kind: tokLParen, text: "("}
	case c == ')':
		p.pos++
		p.tok = token{kind: tokRParen, text: ")"}
	case c == ',':
		p.pos++
		p.tok = token{kind: tokComma, text: ","}
	case c == '*' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '*':
		p.pos += 2
		p.tok = token{kind: tokOp, text: "^"}
	case strings.ContainsRune("+-*/%^", rune(c)):
		p.pos++
		p.tok = token{kind: tokOp, text: string(c)}
	default:
		p.tok = token{kind: tokOp, text: string(c)}
		p.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '.'
}

func (p *parser) scanNumber() token {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}

	// Scientific notation: 2e3, 1.5e-4.
	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		rest := p.input[p.pos+1:]
		if len(rest) > 0 && (rest[0] >= '0' && rest[0] <= '9' || ((rest[0] == '+' || rest[0] == '-') && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9')) {
			p.pos++
			if p.input[p.pos] == '+' || p.input[p.pos] == '-' {
				p.pos++
			}
			for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
				p.pos++
			}
		}
	}

	text := p.input[start:p.pos]

	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{kind: tokOp, text: text}
	}

	return token{kind: tokNumber, text: text, num: num}
}

func (p *parser) scanIdent() token {
	start := p.pos
	for p.pos < len(p.input) && isIdentPart(p.input[p.pos]) {
		p.pos++
	}

	return token{kind: tokIdent, text: p.input[start:p.pos]}
}

// parseExpr handles + and - at the lowest precedence.
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}

		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}

	return left, nil
}

// parseTerm handles *, /, and %.
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/" || p.tok.text == "%") {
		op := p.tok.text
		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}

		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		}
	}

	return left, nil
}

// parseUnary handles leading + and -.
func (p *parser) parseUnary() (float64, error) {
	if p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		p.next()

		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}

		if op == "-" {
			return -v, nil
		}

		return v, nil
	}

	return p.parsePower()
}

// parsePower handles ^ with right associativity.
func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}

	if p.tok.kind == tokOp && p.tok.text == "^" {
		p.next()

		exp, err := p.parseUnary()
		if err != nil {
			return 0, err
		}

		return math.Pow(base, exp), nil
	}

	return base, nil
}

func (p *parser) parsePrimary() (float64, error) {
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.num
		p.next()

		return v, nil

	case tokIdent:
		name := strings.TrimPrefix(p.tok.text, "math.")
		p.next()

		if p.tok.kind == tokLParen {
			return p.parseCall(name)
		}

		if v, ok := constants[name]; ok {
			return v, nil
		}

		return 0, fmt.Errorf("unknown name %q", name)

	case tokLParen:
		p.next()

		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}

		if p.tok.kind != tokRParen {
			return 0, fmt.Errorf("expected ')', got %q", p.tok.text)
		}
		p.next()

		return v, nil

	default:
		return 0, fmt.Errorf("unexpected %q", p.tok.text)
	}
}

// parseCall parses a whitelisted function call; the opening paren is current.
func (p *parser) parseCall(name string) (float64, error) {
	p.next() // consume '('

	args := []float64{}

	if p.tok.kind != tokRParen {
		for {
			v, err := p.parseExpr()
			if err != nil {
				return 0, err
			}

			args = append(args, v)

			if p.tok.kind != tokComma {
				break
			}
			p.next()
		}
	}

	if p.tok.kind != tokRParen {
		return 0, fmt.Errorf("expected ')', got %q", p.tok.text)
	}
	p.next()

	if fn, ok := functions[name]; ok {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s takes 1 argument, got %d", name, len(args))
		}

		return fn(args[0]), nil
	}

	if fn, ok := functions2[name]; ok {
		if len(args) != 2 {
			return 0, fmt.Errorf("%s takes 2 arguments, got %d", name, len(args))
		}

		return fn(args[0], args[1]), nil
	}

	return 0, fmt.Errorf("unknown function %q", name)
}
