package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemanticFromNative(t *testing.T) {
	tests := []struct {
		native   string
		expected SemanticType
	}{
		{"int(11)", SemanticInt},
		{"INT", SemanticInt},
		{"bigint(20) unsigned", SemanticBigInt},
		{"tinyint(1)", SemanticBool},
		{"tinyint(4)", SemanticByte},
		{"decimal(10,2)", SemanticDecimal},
		{"double", SemanticFloat},
		{"varchar(70)", SemanticString},
		{"longtext", SemanticText},
		{"datetime", SemanticDateTime},
		{"timestamp", SemanticDateTime},
		{"date", SemanticDate},
		{"time", SemanticTime},
		{"uuid", SemanticGUID},
		{"varbinary(16)", SemanticBinary},
		{"geometry", SemanticUnknown},
		{"", SemanticUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.expected, SemanticFromNative(tt.native))
		})
	}
}

func TestGoTypeFor(t *testing.T) {
	// Value types gain pointer wrapping when nullable.
	assert.Equal(t, "int", GoTypeFor(SemanticInt, false))
	assert.Equal(t, "*int", GoTypeFor(SemanticInt, true))
	assert.Equal(t, "*bool", GoTypeFor(SemanticBool, true))
	assert.Equal(t, "*time.Time", GoTypeFor(SemanticDateTime, true))

	// Reference-like types never wrap.
	assert.Equal(t, "string", GoTypeFor(SemanticString, true))
	assert.Equal(t, "[]byte", GoTypeFor(SemanticBinary, true))
	assert.Equal(t, "any", GoTypeFor(SemanticUnknown, true))
}

func TestSimpleGoType(t *testing.T) {
	col := ColumnSchema{GoType: "*int"}
	assert.Equal(t, "int", col.SimpleGoType())

	col.GoType = "string"
	assert.Equal(t, "string", col.SimpleGoType())
}
