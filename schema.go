package orcmeta

import (
	"fmt"
	"strings"

	"github.com/orcmeta/orcmeta/internal/orcpb"
)

// Schema renders the Hive-style type signature of an ORC type table, rooted
// at types[0].
func Schema(types []*orcpb.Type) (string, error) {
	if len(types) == 0 {
		return "", fmt.Errorf("orcmeta: schema: empty type table")
	}
	var b strings.Builder
	if err := writeType(&b, types, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeType(b *strings.Builder, types []*orcpb.Type, idx uint32) error {
	if int(idx) >= len(types) {
		return fmt.Errorf("orcmeta: schema: type index %d out of range (table has %d entries)", idx, len(types))
	}
	t := types[idx]
	switch t.Kind {
	case orcpb.Boolean:
		b.WriteString("boolean")
	case orcpb.Byte:
		b.WriteString("byte")
	case orcpb.Short:
		// SHORT has historically been rendered "tinyint" by ORC metadata
		// dumpers even though Hive calls it "smallint"; keep the spelling
		// so output stays comparable with existing tooling.
		b.WriteString("tinyint")
	case orcpb.Int:
		b.WriteString("int")
	case orcpb.Long:
		b.WriteString("bigint")
	case orcpb.Float:
		b.WriteString("float")
	case orcpb.Double:
		b.WriteString("double")
	case orcpb.String:
		b.WriteString("string")
	case orcpb.Binary:
		b.WriteString("binary")
	case orcpb.Timestamp:
		b.WriteString("timestamp")
	case orcpb.Decimal:
		// Decimal, varchar, and char render bare, without precision,
		// scale, or length parameters.
		b.WriteString("decimal")
	case orcpb.Date:
		b.WriteString("date")
	case orcpb.Varchar:
		b.WriteString("varchar")
	case orcpb.Char:
		b.WriteString("char")
	case orcpb.List:
		b.WriteString("array<")
		if err := writeSubtypes(b, types, t); err != nil {
			return err
		}
		b.WriteString(">")
	case orcpb.Map:
		b.WriteString("map<")
		if err := writeSubtypes(b, types, t); err != nil {
			return err
		}
		b.WriteString(">")
	case orcpb.Struct:
		b.WriteString("struct<")
		if err := writeSubtypes(b, types, t); err != nil {
			return err
		}
		b.WriteString(">")
	case orcpb.Union:
		b.WriteString("union<")
		if err := writeSubtypes(b, types, t); err != nil {
			return err
		}
		b.WriteString(">")
	default:
		return fmt.Errorf("orcmeta: schema: type index %d: unrecognized kind %d", idx, t.Kind)
	}
	return nil
}

// writeSubtypes renders a composite node's children in subtype order. Any
// node carrying field names (structs, in practice) gets each child
// prefixed with its name.
func writeSubtypes(b *strings.Builder, types []*orcpb.Type, t *orcpb.Type) error {
	for i, sub := range t.Subtypes {
		if i > 0 {
			b.WriteString(",")
		}
		if i < len(t.FieldNames) {
			b.WriteString(t.FieldNames[i])
			b.WriteString(":")
		}
		if err := writeType(b, types, sub); err != nil {
			return err
		}
	}
	return nil
}
