package simulate

import "strings"

// splitOperands splits a push instruction's operand list on top-level
// commas, respecting single/double quoted strings and backslash-escaped
// quotes within them.
func splitOperands(s string) []string {
	var out []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				cur.WriteByte(s[i])
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == ',':
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 || len(out) > 0 {
		out = append(out, strings.TrimSpace(cur.String()))
	}
	return out
}

// isQuoted reports whether tok is a single- or double-quoted literal.
func isQuoted(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	q := tok[0]
	return (q == '\'' || q == '"') && tok[len(tok)-1] == q
}

// unquote strips the surrounding quotes from a quoted token. Callers must
// check isQuoted first.
func unquote(tok string) string {
	return tok[1 : len(tok)-1]
}

// isIdentifierLike reports whether s looks like a bare JS identifier,
// used by getMember rendering to decide between dot and bracket notation.
func isIdentifierLike(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
		isDigit := c >= '0' && c <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

// containsBareOperator reports whether sym appears in tok outside of any
// quoted substring, used to decide whether a binary operand needs
// parenthesizing to avoid an operator-precedence misread once spliced
// into a compound expression.
func containsBareOperator(tok, sym string) bool {
	var quote byte
	for i := 0; i+len(sym) <= len(tok); i++ {
		c := tok[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			continue
		}
		if tok[i:i+len(sym)] == sym {
			return true
		}
	}
	return false
}

// needsParens reports whether tok should be wrapped in parens before
// splicing it into a compound expression: anything beyond a single
// atomic token (identifier, number, quoted string, or member/call
// expression) risks an operator-precedence misread once concatenated.
func needsParens(tok string) bool {
	return strings.ContainsRune(tok, ' ')
}
