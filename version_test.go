package orcmeta

import "testing"

func TestFormatVersion(t *testing.T) {
	tt := []struct {
		name      string
		major     uint32
		minor     uint32
		writerVer uint32
		want      string
	}{
		{"original", 0, 11, 0, "0.11 with original"},
		{"hive-13083", 0, 12, 4, "0.12 with HIVE-13083"},
		{"orc-135", 1, 1, 6, "1.1 with ORC-135"},
		{"unknown", 1, 1, 99, "1.1 with unknown(99)"},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := formatVersion(tc.major, tc.minor, tc.writerVer)
			if got != tc.want {
				t.Errorf("formatVersion(%d, %d, %d) = %q, want %q", tc.major, tc.minor, tc.writerVer, got, tc.want)
			}
		})
	}
}
