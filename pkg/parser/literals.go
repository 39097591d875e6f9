package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/michaelmacinnis/adapted"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"lexenv/interpreter-go/pkg/ast"
)

// parseNumber converts a numeric literal token. Separators are dropped and
// values past float64 range become infinities.
func parseNumber(text string) (float64, error) {
	clean := strings.ReplaceAll(text, "_", "")
	if strings.HasSuffix(clean, "n") {
		return 0, fmt.Errorf("parser: unsupported bigint literal %s", text)
	}
	if len(clean) > 1 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, ok := new(big.Int).SetString(clean, 0)
			if !ok {
				return 0, fmt.Errorf("parser: invalid numeric literal %s", text)
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, nil
		}
		if isLegacyOctal(clean) {
			n, err := strconv.ParseUint(clean[1:], 8, 64)
			if err != nil {
				return 0, fmt.Errorf("parser: invalid numeric literal %s", text)
			}
			return float64(n), nil
		}
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("parser: invalid numeric literal %s", text)
	}
	return f, nil
}

func isLegacyOctal(s string) bool {
	for _, c := range s {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

func (ctx *parseContext) parseStringLiteral(node *sitter.Node) (*ast.StringLiteral, error) {
	raw := ctx.text(node)
	if len(raw) < 2 {
		return nil, fmt.Errorf("parser: malformed string literal")
	}
	value, err := cookString(raw[1 : len(raw)-1])
	if err != nil {
		return nil, wrapParseError(node, err)
	}
	lit := ast.NewStringLiteral(value)
	annotateSpan(lit, node)
	return lit, nil
}

// parseTemplateString splits an untagged template into cooked strings and
// the substituted expressions.
func (ctx *parseContext) parseTemplateString(node *sitter.Node) (*ast.TemplateLiteral, error) {
	start := int(node.StartByte()) + 1
	end := int(node.EndByte()) - 1
	var (
		quasis []string
		exprs  []ast.Expression
	)
	pos := start
	for _, child := range namedChildren(node) {
		if child.Kind() != "template_substitution" {
			continue
		}
		quasi, err := cookTemplate(string(ctx.source[pos:child.StartByte()]))
		if err != nil {
			return nil, wrapParseError(child, err)
		}
		quasis = append(quasis, quasi)
		expr, err := ctx.parseExpression(firstNamedChild(child))
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		pos = int(child.EndByte())
	}
	if end < pos {
		end = pos
	}
	tail, err := cookTemplate(string(ctx.source[pos:end]))
	if err != nil {
		return nil, wrapParseError(node, err)
	}
	quasis = append(quasis, tail)
	return ast.NewTemplateLiteral(quasis, exprs), nil
}

func cookTemplate(raw string) (string, error) {
	return cookString(strings.ReplaceAll(raw, "\r\n", "\n"))
}

// cookString resolves the escape sequences of a string body. The escapes
// shared with Go strings go through adapted.ActualBytes.
func cookString(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}
	var b strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			next := strings.IndexByte(raw[i:], '\\')
			if next < 0 {
				b.WriteString(raw[i:])
				break
			}
			b.WriteString(raw[i : i+next])
			i += next
			continue
		}
		if i+1 >= len(raw) {
			return "", fmt.Errorf("parser: unterminated escape sequence")
		}
		c := raw[i+1]
		switch {
		case c == '\n':
			i += 2
		case c == '\r':
			i += 2
			if i < len(raw) && raw[i] == '\n' {
				i++
			}
		case c == 'u' && i+2 < len(raw) && raw[i+2] == '{':
			closing := strings.IndexByte(raw[i:], '}')
			if closing < 0 {
				return "", fmt.Errorf("parser: invalid Unicode escape sequence")
			}
			code, err := strconv.ParseUint(raw[i+3:i+closing], 16, 32)
			if err != nil || code > utf8.MaxRune {
				return "", fmt.Errorf("parser: invalid Unicode escape sequence")
			}
			b.WriteRune(rune(code))
			i += closing + 1
		case c == 'u':
			r, width, err := unicodeEscape(raw[i:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += width
		case c == 'x':
			if i+4 > len(raw) {
				return "", fmt.Errorf("parser: invalid hexadecimal escape sequence")
			}
			code, err := strconv.ParseUint(raw[i+2:i+4], 16, 8)
			if err != nil {
				return "", fmt.Errorf("parser: invalid hexadecimal escape sequence")
			}
			b.WriteRune(rune(code))
			i += 4
		case c >= '0' && c <= '7':
			code, width := octalEscape(raw[i+1:])
			b.WriteRune(code)
			i += 1 + width
		case strings.IndexByte(`nrtbfv'"\`, c) >= 0:
			s, err := adapted.ActualBytes(raw[i : i+2])
			if err != nil {
				return "", fmt.Errorf("parser: invalid escape sequence \\%c", c)
			}
			b.WriteString(s)
			i += 2
		default:
			r, size := utf8.DecodeRuneInString(raw[i+1:])
			b.WriteRune(r)
			i += 1 + size
		}
	}
	return b.String(), nil
}

// unicodeEscape decodes \uXXXX at the start of s, joining a surrogate pair
// when a low surrogate escape follows a high one.
func unicodeEscape(s string) (rune, int, error) {
	if len(s) < 6 {
		return 0, 0, fmt.Errorf("parser: invalid Unicode escape sequence")
	}
	code, err := strconv.ParseUint(s[2:6], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("parser: invalid Unicode escape sequence")
	}
	r := rune(code)
	if !utf16.IsSurrogate(r) {
		out, err := adapted.ActualBytes(s[:6])
		if err != nil {
			return 0, 0, fmt.Errorf("parser: invalid Unicode escape sequence")
		}
		decoded, _ := utf8.DecodeRuneInString(out)
		return decoded, 6, nil
	}
	if len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
		if low, err := strconv.ParseUint(s[8:12], 16, 16); err == nil {
			if pair := utf16.DecodeRune(r, rune(low)); pair != utf8.RuneError {
				return pair, 12, nil
			}
		}
	}
	return utf8.RuneError, 6, nil
}

// octalEscape reads up to three octal digits with a value of at most 0377.
func octalEscape(s string) (rune, int) {
	var code rune
	width := 0
	for width < len(s) && width < 3 && s[width] >= '0' && s[width] <= '7' {
		next := code<<3 | rune(s[width]-'0')
		if next > 0377 {
			break
		}
		code = next
		width++
	}
	return code, width
}
