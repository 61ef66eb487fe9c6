package util

import "testing"

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		def  int64
		want int64
	}{
		{"50MB", 0, 50 * 1024 * 1024},
		{"512KB", 0, 512 * 1024},
		{"2GB", 0, 2 * 1024 * 1024 * 1024},
		{"1024", 0, 1024},
		{" 10mb ", 0, 10 * 1024 * 1024},
		{"", 99, 99},
		{"notasize", 42, 42},
	}

	for _, tc := range cases {
		if got := ParseSize(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{10, "10 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tc := range cases {
		if got := FormatSize(tc.in); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("1234567890:token", 4); got != "1234***" {
		t.Errorf("MaskSecret = %q", got)
	}
	if got := MaskSecret("ab", 4); got != "***" {
		t.Errorf("short secret should be fully masked, got %q", got)
	}
}
