package orcmeta

import "fmt"

// writerVersion maps PostScript's writerVersion tag to the human-readable
// milestone name it has historically corresponded to in Apache ORC.
type writerVersion uint32

const (
	original  writerVersion = 0
	hive8732  writerVersion = 1
	hive4243  writerVersion = 2
	hive12055 writerVersion = 3
	hive13083 writerVersion = 4
	orc101    writerVersion = 5
	orc135    writerVersion = 6
)

func (v writerVersion) milestone() (string, bool) {
	switch v {
	case original:
		return "original", true
	case hive8732:
		return "HIVE-8732", true
	case hive4243:
		return "HIVE-4243", true
	case hive12055:
		return "HIVE-12055", true
	case hive13083:
		return "HIVE-13083", true
	case orc101:
		return "ORC-101", true
	case orc135:
		return "ORC-135", true
	default:
		return "", false
	}
}

// formatVersion renders a PostScript's two-element version array and
// writerVersion tag as the "%d.%d with <milestone>" string ORC tooling has
// traditionally reported.
//
// An out-of-range writerVersion (anything past ORC-135's tag of 6) is
// rendered as "unknown(n)" rather than omitted, so the caller always gets a
// complete, if imprecise, version string instead of a partially-filled
// struct.
func formatVersion(major, minor uint32, wv uint32) string {
	name, ok := writerVersion(wv).milestone()
	if !ok {
		name = fmt.Sprintf("unknown(%d)", wv)
	}
	return fmt.Sprintf("%d.%d with %s", major, minor, name)
}
