package main

import "testing"

func TestPackURL(t *testing.T) {
	tests := []struct {
		base, sub, ref string
		want           string
	}{
		{"https://example.com/p.git", "", "", "git::https://example.com/p.git"},
		{"https://example.com/p.git", "", "v2", "git::https://example.com/p.git?ref=v2"},
		{"https://example.com/p.git", "packs/default", "main", "git::https://example.com/p.git//packs/default?ref=main"},
	}
	for _, tt := range tests {
		if got := packURL(tt.base, tt.sub, tt.ref); got != tt.want {
			t.Errorf("packURL(%q, %q, %q) = %q, want %q", tt.base, tt.sub, tt.ref, got, tt.want)
		}
	}
}
