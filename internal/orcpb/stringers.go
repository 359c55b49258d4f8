package orcpb

import "fmt"

// String renders the upper-case ORC stream-kind name when Known is true.
// A kind this version does not recognize renders by its raw protobuf
// integer tag rather than being dropped.
func (s *Stream) String() string {
	if !s.Known {
		return fmt.Sprintf("UNKNOWN(%d)", s.RawKind)
	}
	switch s.Kind {
	case Present:
		return "PRESENT"
	case Data:
		return "DATA"
	case Length:
		return "LENGTH"
	case DictionaryData:
		return "DICTIONARY_DATA"
	case DictionaryCount:
		return "DICTIONARY_COUNT"
	case Secondary:
		return "SECONDARY"
	case RowIndex:
		return "ROW_INDEX"
	case BloomFilter:
		return "BLOOM_FILTER"
	case BloomFilterUTF8:
		return "BLOOM_FILTER_UTF8"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s.RawKind)
	}
}

// String renders the upper-case ORC column-encoding name.
func (k EncodingKind) String() string {
	switch k {
	case DirectEncoding:
		return "DIRECT"
	case DictionaryEncoding:
		return "DICTIONARY"
	case DirectV2Encoding:
		return "DIRECT_V2"
	case DictionaryV2Encoding:
		return "DICTIONARY_V2"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// String renders the type kind's ORC wire-format name (not the Hive-style
// schema spelling; see the root package's Schema function for that).
func (k TypeKind) String() string {
	switch k {
	case Boolean:
		return "BOOLEAN"
	case Byte:
		return "BYTE"
	case Short:
		return "SHORT"
	case Int:
		return "INT"
	case Long:
		return "LONG"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case String:
		return "STRING"
	case Binary:
		return "BINARY"
	case Timestamp:
		return "TIMESTAMP"
	case List:
		return "LIST"
	case Map:
		return "MAP"
	case Struct:
		return "STRUCT"
	case Union:
		return "UNION"
	case Decimal:
		return "DECIMAL"
	case Date:
		return "DATE"
	case Varchar:
		return "VARCHAR"
	case Char:
		return "CHAR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}
