package binding

import "testing"

func TestClassifyConversionIdentity(t *testing.T) {
	if c := ClassifyConversion(TypeInt32, TypeInt32); c.Kind != ConversionIdentity {
		t.Errorf("same type: want identity, got %s", c.Kind)
	}
	if c := ClassifyConversion(TypeError, TypeInt32); !c.IsIdentity() {
		t.Errorf("from error: want identity, got %s", c.Kind)
	}
	if c := ClassifyConversion(TypeInt32, TypeError); !c.IsIdentity() {
		t.Errorf("to error: want identity, got %s", c.Kind)
	}
}

func TestClassifyConversionNumericWidening(t *testing.T) {
	tests := []struct {
		from, to *TypeSymbol
		want     ConversionKind
	}{
		{TypeInt8, TypeInt32, ConversionImplicit},
		{TypeInt32, TypeInt64, ConversionImplicit},
		{TypeInt32, TypeInt8, ConversionExplicit},  // narrowing
		{TypeInt32, TypeUInt32, ConversionExplicit}, // signedness change
		{TypeUInt8, TypeUInt32, ConversionImplicit},
		{TypeFloat32, TypeFloat64, ConversionImplicit},
		{TypeFloat64, TypeFloat32, ConversionExplicit},
	}
	for _, tt := range tests {
		got := ClassifyConversion(tt.from, tt.to)
		if got.Kind != tt.want {
			t.Errorf("%s -> %s: want %s, got %s", tt.from.Name, tt.to.Name, tt.want, got.Kind)
		}
	}
}

func TestClassifyConversionToObjectOrString(t *testing.T) {
	if c := ClassifyConversion(TypeInt32, TypeObject); !c.IsImplicit() {
		t.Errorf("int32 -> object: want implicit, got %s", c.Kind)
	}
	if c := ClassifyConversion(TypeBool, TypeString); !c.IsImplicit() {
		t.Errorf("bool -> string: want implicit, got %s", c.Kind)
	}
	if c := ClassifyConversion(TypeInt32, TypeString); !c.IsImplicit() {
		t.Errorf("int32 -> string: want implicit, got %s", c.Kind)
	}
}

func TestClassifyConversionStringCharNumericExplicit(t *testing.T) {
	tests := []struct{ from, to *TypeSymbol }{
		{TypeString, TypeInt32},
		{TypeString, TypeFloat64},
		{TypeChar, TypeInt32},
		{TypeInt32, TypeChar},
		{TypeObject, TypeInt32},
	}
	for _, tt := range tests {
		got := ClassifyConversion(tt.from, tt.to)
		if !got.IsExplicit() {
			t.Errorf("%s -> %s: want explicit, got %s", tt.from.Name, tt.to.Name, got.Kind)
		}
	}
}

func TestClassifyConversionUnrelatedIsNone(t *testing.T) {
	if c := ClassifyConversion(TypeBool, TypeInt32); c.Exists() {
		t.Errorf("bool -> int32: want no conversion, got %s", c.Kind)
	}
	if c := ClassifyConversion(TypeString, TypeBool); c.Exists() {
		t.Errorf("string -> bool: want no conversion, got %s", c.Kind)
	}
}
