package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"Germany", "germany", 0},
		{"Germny", "Germany", 1},
		{"Kenya", "Kenia", 1},
		{"Curaçao", "Curacao", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := ComputeDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("ComputeDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		short, long string
		want        bool
	}{
		{"Emirates", "United Arab Emirates", true},
		{"UAE", "United Arab Emirates", true},
		{"EAU", "United Arab Emirates", false},
		{"Emiratez", "United Arab Emirates", false},
		{"congo", "Democratic Republic of Congo", true},
		{"", "anything", true},
	}
	for _, tt := range tests {
		if got := IsSubsequence(tt.short, tt.long); got != tt.want {
			t.Errorf("IsSubsequence(%q, %q) = %v, want %v", tt.short, tt.long, got, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Germany", "Guernsey", "Armenia", "Congo", "Democratic Republic of Congo", "Germany"}

	tests := []struct {
		name string
		want []string
	}{
		{"Germny", []string{"Germany"}},
		{"germany", []string{"Germany"}},
		{"Congo", []string{"Congo", "Democratic Republic of Congo"}},
		{"Atlantis", []string{}},
	}
	for _, tt := range tests {
		got := Suggest(tt.name, candidates, 2, 3)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Suggest(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestSuggestAbbreviation(t *testing.T) {
	got := Suggest("UAE", []string{"Uganda", "United Arab Emirates", "Uruguay"}, 2, 3)
	if diff := cmp.Diff([]string{"United Arab Emirates"}, got); diff != "" {
		t.Errorf("Suggest(UAE) mismatch (-want +got):\n%s", diff)
	}
}
