package schema

import "strings"

// SemanticType is the database-independent classification of a column type.
// Mapping from native type strings is pure data: no runtime type
// introspection is involved, and unmapped types fall back to SemanticUnknown
// rather than being left unset.
type SemanticType string

const (
	SemanticInt      SemanticType = "int"
	SemanticBigInt   SemanticType = "bigint"
	SemanticSmallInt SemanticType = "smallint"
	SemanticByte     SemanticType = "byte"
	SemanticDecimal  SemanticType = "decimal"
	SemanticFloat    SemanticType = "float"
	SemanticBool     SemanticType = "bool"
	SemanticString   SemanticType = "string"
	SemanticText     SemanticType = "text"
	SemanticDateTime SemanticType = "datetime"
	SemanticDate     SemanticType = "date"
	SemanticTime     SemanticType = "time"
	SemanticGUID     SemanticType = "guid"
	SemanticBinary   SemanticType = "binary"
	SemanticUnknown  SemanticType = "unknown"
)

// semanticByNative maps lowercase native type names (without length or
// precision suffix) to their semantic classification. Covers MySQL and
// SQLite type names used by the catalog readers.
var semanticByNative = map[string]SemanticType{
	"int":              SemanticInt,
	"integer":          SemanticInt,
	"mediumint":        SemanticInt,
	"bigint":           SemanticBigInt,
	"smallint":         SemanticSmallInt,
	"tinyint":          SemanticByte,
	"decimal":          SemanticDecimal,
	"numeric":          SemanticDecimal,
	"float":            SemanticFloat,
	"double":           SemanticFloat,
	"real":             SemanticFloat,
	"bit":              SemanticBool,
	"bool":             SemanticBool,
	"boolean":          SemanticBool,
	"char":             SemanticString,
	"varchar":          SemanticString,
	"enum":             SemanticString,
	"set":              SemanticString,
	"text":             SemanticText,
	"tinytext":         SemanticText,
	"mediumtext":       SemanticText,
	"longtext":         SemanticText,
	"json":             SemanticText,
	"datetime":         SemanticDateTime,
	"timestamp":        SemanticDateTime,
	"date":             SemanticDate,
	"time":             SemanticTime,
	"year":             SemanticInt,
	"uuid":             SemanticGUID,
	"binary":           SemanticBinary,
	"varbinary":        SemanticBinary,
	"blob":             SemanticBinary,
	"tinyblob":         SemanticBinary,
	"mediumblob":       SemanticBinary,
	"longblob":         SemanticBinary,
}

// goTypeBySemantic maps a semantic type to its non-nullable Go type.
var goTypeBySemantic = map[SemanticType]string{
	SemanticInt:      "int",
	SemanticBigInt:   "int64",
	SemanticSmallInt: "int16",
	SemanticByte:     "int8",
	SemanticDecimal:  "float64",
	SemanticFloat:    "float64",
	SemanticBool:     "bool",
	SemanticString:   "string",
	SemanticText:     "string",
	SemanticDateTime: "time.Time",
	SemanticDate:     "time.Time",
	SemanticTime:     "string",
	SemanticGUID:     "string",
	SemanticBinary:   "[]byte",
	SemanticUnknown:  "any",
}

// SemanticFromNative classifies a raw database type string.
// "tinyint(1)" is treated as bool following the MySQL convention.
func SemanticFromNative(nativeType string) SemanticType {
	base := strings.ToLower(strings.TrimSpace(nativeType))

	if strings.HasPrefix(base, "tinyint(1)") {
		return SemanticBool
	}

	// Strip "(length)" and modifiers like "unsigned".
	if idx := strings.IndexByte(base, '('); idx > 0 {
		base = base[:idx]
	}
	if idx := strings.IndexByte(base, ' '); idx > 0 {
		base = base[:idx]
	}

	if sem, ok := semanticByNative[base]; ok {
		return sem
	}
	return SemanticUnknown
}

// GoTypeFor returns the Go type for a semantic type, wrapped into its
// pointer form when the column is nullable and the base type is a value
// type. Strings, byte slices and "any" carry nil-ability themselves.
func GoTypeFor(sem SemanticType, nullable bool) string {
	goType, ok := goTypeBySemantic[sem]
	if !ok {
		goType = goTypeBySemantic[SemanticUnknown]
	}

	if nullable && isValueType(goType) {
		return "*" + goType
	}
	return goType
}

func isValueType(goType string) bool {
	switch goType {
	case "string", "[]byte", "any":
		return false
	default:
		return true
	}
}
