package binding

// ConversionKind classifies how (if at all) one type can become another.
type ConversionKind int

const (
	ConversionNone ConversionKind = iota
	ConversionIdentity
	ConversionImplicit
	ConversionExplicit
)

func (k ConversionKind) String() string {
	switch k {
	case ConversionIdentity:
		return "identity"
	case ConversionImplicit:
		return "implicit"
	case ConversionExplicit:
		return "explicit"
	default:
		return "none"
	}
}

// Conversion is the result of classifying a from->to conversion.
type Conversion struct {
	Kind ConversionKind
}

// Exists reports whether any conversion (implicit or explicit) is possible.
func (c Conversion) Exists() bool { return c.Kind != ConversionNone }

// IsIdentity reports a no-op conversion (same type, or either side error).
func (c Conversion) IsIdentity() bool { return c.Kind == ConversionIdentity }

// IsImplicit reports whether the conversion may happen silently. Identity
// counts as implicit: anywhere an implicit conversion is legal, so is no
// conversion at all.
func (c Conversion) IsImplicit() bool {
	return c.Kind == ConversionImplicit || c.Kind == ConversionIdentity
}

// IsExplicit reports whether the conversion requires a cast expression.
func (c Conversion) IsExplicit() bool { return c.Kind == ConversionExplicit }

// numericRank orders same-signedness-family numeric types from narrowest
// to widest; a conversion is implicit only when it moves to a strictly
// higher rank within the same family.
var numericRank = map[*TypeSymbol]int{
	TypeInt8: 0, TypeInt16: 1, TypeInt32: 2, TypeInt64: 3,
	TypeUInt8: 0, TypeUInt16: 1, TypeUInt32: 2, TypeUInt64: 3,
	TypeFloat32: 0, TypeFloat64: 1, TypeFloat128: 2,
}

func sameSignednessFamily(a, b *TypeSymbol) bool {
	if a.IsFloat != b.IsFloat {
		return false
	}
	if a.IsFloat {
		return true // every float type is signed
	}
	return a.IsSigned == b.IsSigned
}

// ClassifyConversion classifies a from -> to conversion. Identity covers
// from==to and either side being the error sentinel (it suppresses
// cascading diagnostics rather than conflicting with a real conversion
// rule). Beyond that: widening within a numeric
// signedness family and anything-to-object/string (numeric->string
// included) are implicit; any other numeric-to-numeric, string->numeric,
// char<->numeric, and object->T are explicit; everything else is unrelated.
func ClassifyConversion(from, to *TypeSymbol) Conversion {
	if from == to {
		return Conversion{ConversionIdentity}
	}
	if from == TypeError || to == TypeError {
		return Conversion{ConversionIdentity}
	}
	if to == TypeObject || to == TypeString {
		return Conversion{ConversionImplicit}
	}
	if from.IsNumeric && to.IsNumeric {
		if sameSignednessFamily(from, to) {
			if fr, fok := numericRank[from]; fok {
				if tr, tok := numericRank[to]; tok && tr > fr {
					return Conversion{ConversionImplicit}
				}
			}
		}
		return Conversion{ConversionExplicit}
	}
	if (from == TypeString && to.IsNumeric) || (from.IsNumeric && to == TypeString) {
		return Conversion{ConversionExplicit}
	}
	if (from == TypeChar && to.IsNumeric) || (from.IsNumeric && to == TypeChar) {
		return Conversion{ConversionExplicit}
	}
	if from == TypeObject {
		return Conversion{ConversionExplicit}
	}
	return Conversion{ConversionNone}
}
