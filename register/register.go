// Package register implements the AS2 VM's register file: a 254-slot
// allocator and the Register value it hands out.
package register

import "fmt"

// reserved holds assembler keywords that must be quoted when used as a
// register's symbolic name.
var reserved = map[string]bool{
	"new": true, "var": true, "this": true, "function": true, "function2": true,
	"return": true, "if": true, "else": true, "while": true, "for": true,
	"break": true, "continue": true, "true": true, "false": true, "null": true,
	"undefined": true, "typeof": true, "instanceof": true, "delete": true,
	"in": true, "with": true, "do": true, "switch": true, "case": true,
	"default": true, "void": true, "extends": true, "implements": true,
	"import": true, "export": true, "class": true, "super": true, "try": true,
	"catch": true, "finally": true, "throw": true, "static": true, "set": true, "get": true,
}

// Register is a named VM register slot. The Allocator tracks slots by Id
// alone; Name and Tag only change how the Register renders. Go's == on
// Register compares all three fields.
type Register struct {
	Id   int
	Name string // symbolic name, empty if anonymous
	Tag  string // debug tag, rendered as a trailing comment
}

// String renders a Register the way the generator emits it: `r:<id>` for
// an anonymous register, `r:<name>` (quoted if reserved) for a named one,
// with an optional `/*tag*/` suffix.
func (r Register) String() string {
	var body string
	if r.Name == "" {
		body = fmt.Sprintf("r:%d", r.Id)
	} else if reserved[r.Name] {
		body = fmt.Sprintf("r:'%s'", r.Name)
	} else {
		body = fmt.Sprintf("r:%s", r.Name)
	}
	if r.Tag != "" {
		return body + " /*" + r.Tag + "*/"
	}
	return body
}
