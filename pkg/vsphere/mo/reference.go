/*
Package mo models managed object references and the catalog of managed object
types the client knows how to address.
*/
package mo

import (
	"fmt"
	"strings"
)

/*
Reference identifies a remote managed object. References are values; two
references are equal when both their type and value are equal.
*/
type Reference struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

/*
NewReference returns a Reference of the given type and value.
*/
func NewReference(typ, value string) Reference {
	return Reference{Type: typ, Value: value}
}

/*
String implements fmt.Stringer.
*/
func (r Reference) String() string {
	return fmt.Sprintf("%s:%s", r.Type, r.Value)
}

/*
IsZero reports whether r is the zero reference.
*/
func (r Reference) IsZero() bool {
	return "" == r.Type && "" == r.Value
}

/*
ParseReference parses the "Type:Value" form produced by String.
*/
func ParseReference(s string) (Reference, error) {
	typ, value, ok := strings.Cut(s, ":")
	if !ok || "" == typ || "" == value {
		return Reference{}, fmt.Errorf("invalid managed object reference %q, want Type:Value", s)
	}
	return NewReference(typ, value), nil
}
