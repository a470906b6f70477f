package validation

import (
	"strings"
	"testing"
)

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{"school.talentlms.com", false},
		{"School.TalentLMS.com", false},
		{"lms-1.example.org", false},
		{"127.0.0.1:8443", false},
		{"localhost", false},
		{"[::1]:443", false},
		{"", true},
		{"https://school.talentlms.com", true},
		{"school.talentlms.com/api", true},
		{"user@school.talentlms.com", true},
		{"school .talentlms.com", true},
		{"-bad.example.com", true},
		{"bad-.example.com", true},
		{"double..dot.com", true},
		{"under_score.com", true},
		{"host:0", true},
		{"host:99999", true},
		{"host:http", true},
		{strings.Repeat("a", 63) + "." + strings.Repeat("b", 63) + "." + strings.Repeat("c", 63) + "." + strings.Repeat("d", 63) + ".com", true},
	}
	for _, tt := range tests {
		err := ValidateDomain(tt.domain)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDomain(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{" #7 ", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"3000000000", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePositiveInt(tt.input, "user ID")
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePositiveInt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePositiveInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
		if err != nil && !strings.Contains(err.Error(), "user ID") {
			t.Errorf("error should name the field: %v", err)
		}
	}
}
