package bytesize

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		// Plain numbers
		{"plain zero", "0", 0, false},
		{"plain bytes", "1024", 1024, false},
		{"plain large", "1073741824", 1073741824, false},

		// Binary units (×1024)
		{"kibibytes Ki", "1Ki", 1024, false},
		{"mebibytes MiB", "100MiB", 100 * 1024 * 1024, false},
		{"gibibytes Gi", "1Gi", 1024 * 1024 * 1024, false},
		{"tebibytes TiB", "1TiB", 1024 * 1024 * 1024 * 1024, false},

		// Decimal units (×1000)
		{"kilobytes KB", "1KB", 1000, false},
		{"megabytes MB", "100MB", 100 * 1000 * 1000, false},
		{"gigabytes GB", "1GB", 1000 * 1000 * 1000, false},

		// Case insensitivity and whitespace
		{"lowercase gi", "1gi", 1024 * 1024 * 1024, false},
		{"leading space", "  1Gi", 1024 * 1024 * 1024, false},
		{"space between", "1 Gi", 1024 * 1024 * 1024, false},

		// Floating point
		{"float mebibytes", "1.5Mi", ByteSize(1.5 * 1024 * 1024), false},
		{"float gibibytes", "0.5Gi", ByteSize(0.5 * 1024 * 1024 * 1024), false},

		// Error cases
		{"empty string", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"invalid unit", "1Xi", 0, true},
		{"negative number", "-1Gi", 0, true},
		{"no number", "Gi", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		size ByteSize
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{KiB, "1.00KiB"},
		{100 * MiB, "100.00MiB"},
		{GiB, "1.00GiB"},
		{ByteSize(1.5 * float64(GiB)), "1.50GiB"},
		{2 * TiB, "2.00TiB"},
	}

	for _, tt := range tests {
		if got := tt.size.String(); got != tt.want {
			t.Errorf("ByteSize(%d).String() = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestGiBConversions(t *testing.T) {
	if got := GiBToBytes(2); got != 2*1073741824 {
		t.Errorf("GiBToBytes(2) = %d, want %d", got, int64(2*1073741824))
	}

	// 1.5 GiB displays as 1.5
	if got := BytesToGiB(1610612736); got != 1.5 {
		t.Errorf("BytesToGiB(1.5Gi) = %v, want 1.5", got)
	}

	// Rounding to two decimals
	if got := BytesToGiB(1073741824 + 5368709); got != 1.01 {
		t.Errorf("BytesToGiB = %v, want 1.01", got)
	}

	if got := BytesToGiB(0); got != 0 {
		t.Errorf("BytesToGiB(0) = %v, want 0", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		used, limit int64
		want        float64
	}{
		{"half", 512, 1024, 50},
		{"full", 1024, 1024, 100},
		{"over", 2048, 1024, 200},
		{"zero limit", 100, 0, 0},
		{"negative limit", 100, -1, 0},
		{"fractional", 1, 3, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.used, tt.limit); got != tt.want {
				t.Errorf("Percentage(%d, %d) = %v, want %v", tt.used, tt.limit, got, tt.want)
			}
		})
	}
}
