package mongodb_test

import (
	"testing"

	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

func TestFormatCode(t *testing.T) {
	tests := []struct {
		prefix string
		n      int64
		want   string
	}{
		{"PRJ", 1, "PRJ0001"},
		{"PRJ", 42, "PRJ0042"},
		{"INV", 999, "INV0999"},
		{"CUS", 1234, "CUS1234"},
		{"SUP", 10000, "SUP10000"},
		{"JHC/LAB/", 7, "JHC/LAB/0007"},
		{"SC", 3, "SC0003"},
		{"EMP", 15, "EMP0015"},
	}

	for _, tt := range tests {
		if got := mongodb.FormatCode(tt.prefix, tt.n); got != tt.want {
			t.Errorf("FormatCode(%q, %d) = %q, want %q", tt.prefix, tt.n, got, tt.want)
		}
	}
}
