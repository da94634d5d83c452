package format

// Kind distinguishes inline formatters from block formatters.
type Kind int

const (
	// Inline formatters apply to arbitrary ranges of a slot.
	Inline Kind = iota
	// Block formatters always cover the whole slot.
	Block
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Formatter identifies one kind of formatting. Formatters are compared by
// pointer identity at runtime and by Name when serialized.
type Formatter struct {
	Name string
	Kind Kind

	// Columned formatters do not stack inside one another and are rendered
	// at the innermost level of a format tree.
	Columned bool

	// Priority orders formats attached to the same tree node, lowest first.
	Priority int
}

// NewFormatter creates an inline formatter.
func NewFormatter(name string) *Formatter {
	return &Formatter{Name: name, Kind: Inline}
}

// NewBlockFormatter creates a block formatter.
func NewBlockFormatter(name string) *Formatter {
	return &Formatter{Name: name, Kind: Block}
}

// IsBlock reports whether the formatter covers whole slots.
func (f *Formatter) IsBlock() bool {
	return f.Kind == Block
}

// Range is a formatted span [Start, End) carrying Value.
type Range struct {
	Start int
	End   int
	Value any
}

// Len returns the span length.
func (r Range) Len() int {
	return r.End - r.Start
}

// Item is a range tagged with its formatter.
type Item struct {
	Formatter *Formatter
	Start     int
	End       int
	Value     any
}

// Entry pairs a formatter with a value.
type Entry struct {
	Formatter *Formatter
	Value     any
}
