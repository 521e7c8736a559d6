package blocks

import "slices"

// Kind is the block_type discriminant.
type Kind string

const (
	KindHeader Kind = "Header"
	KindFooter Kind = "Footer"
)

var kinds = []Kind{KindHeader, KindFooter}

// Kinds lists every block kind in declaration order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// ParseKind returns the Kind named by value or an UnknownBlockKindError.
func ParseKind(value string) (Kind, error) {
	kind := Kind(value)
	if !slices.Contains(kinds, kind) {
		return "", &UnknownBlockKindError{Kind: value}
	}
	return kind, nil
}

// Block is one typed unit of post content. The set of implementations is
// closed to this package.
type Block interface {
	Kind() Kind
	isBlock()
}

// Header is a block carrying one content field.
type Header struct {
	Content Field
}

func (Header) Kind() Kind { return KindHeader }
func (Header) isBlock()   {}

// Footer is a block carrying one copyright field.
type Footer struct {
	Copyright Field
}

func (Footer) Kind() Kind { return KindFooter }
func (Footer) isBlock()   {}

// fieldsOf returns the variant's fields in registry order.
func fieldsOf(block Block) []Field {
	switch b := block.(type) {
	case Header:
		return []Field{b.Content}
	case Footer:
		return []Field{b.Copyright}
	default:
		panic("blocks: unhandled block variant")
	}
}

func build(kind Kind, fields []Field) Block {
	switch kind {
	case KindHeader:
		return Header{Content: fields[0]}
	case KindFooter:
		return Footer{Copyright: fields[0]}
	default:
		panic("blocks: unhandled block kind " + string(kind))
	}
}

// Validate checks every field carried by the block.
func Validate(block Block) error {
	if block == nil {
		return &PayloadError{Field: "block", Reason: "is missing"}
	}
	for _, field := range fieldsOf(block) {
		if err := field.Validate(); err != nil {
			return err
		}
	}
	return nil
}
