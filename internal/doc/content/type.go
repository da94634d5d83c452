package content

// Type classifies what a slot may hold. A slot schema is a list of Types.
type Type int

const (
	// TypeText is plain text.
	TypeText Type = iota
	// TypeInline is a component rendered inside a line of text.
	TypeInline
	// TypeBlock is a component that breaks the text flow.
	TypeBlock
)

// String returns the wire name of the type.
func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInline:
		return "inline"
	case TypeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseType converts a wire name back into a Type.
func ParseType(s string) (Type, bool) {
	switch s {
	case "text":
		return TypeText, true
	case "inline":
		return TypeInline, true
	case "block":
		return TypeBlock, true
	default:
		return 0, false
	}
}

// MarshalText encodes the type by name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name. Unknown names decode as TypeText.
func (t *Type) UnmarshalText(b []byte) error {
	v, _ := ParseType(string(b))
	*t = v
	return nil
}
