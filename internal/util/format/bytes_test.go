package format

import "testing"

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero bytes", bytes: 0, want: "0 B"},
		{name: "single byte", bytes: 1, want: "1 B"},
		{name: "under 1KiB", bytes: 1023, want: "1023 B"},
		{name: "exactly 1KiB", bytes: 1024, want: "1.0 KiB"},
		{name: "1.5 KiB", bytes: 1536, want: "1.5 KiB"},
		{name: "exactly 1MiB", bytes: 1024 * 1024, want: "1.0 MiB"},
		{name: "50 MiB", bytes: 50 * 1024 * 1024, want: "50 MiB"},
		{name: "1.5 GiB", bytes: 1536 * 1024 * 1024, want: "1.5 GiB"},
		{name: "negative", bytes: -5, want: "-5 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HumanizeBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(7); got != "7.000s" {
		t.Errorf("Seconds(7) = %q", got)
	}
	if got := Seconds(3.5); got != "3.500s" {
		t.Errorf("Seconds(3.5) = %q", got)
	}
}
