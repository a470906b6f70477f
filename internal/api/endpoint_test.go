package api

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestEndpoint_NoParams(t *testing.T) {
	if got := EncodeEndpoint("courses", nil); got != "courses" {
		t.Errorf("EncodeEndpoint(courses, nil) = %q, want courses", got)
	}
	if got := EncodeEndpoint("courses", Params{}); got != "courses" {
		t.Errorf("EncodeEndpoint(courses, {}) = %q, want courses", got)
	}
}

func TestEndpoint_GoToCourse(t *testing.T) {
	got := EncodeEndpoint("goToCourse", P("user_id", 1, "course_id", 2, "logout_redirect", "x"))
	want := "goToCourse/user_id:1,course_id:2,logout_redirect:eA=="
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEndpoint_ValueEncoding(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"string", P("email", "a@b.c"), "users/email:a@b.c"},
		{"int", P("id", 42), "users/id:42"},
		{"float", P("score", 1.5), "users/score:1.5"},
		{"true", P("active", true), "users/active:on"},
		{"false", P("active", false), "users/active:off"},
		{"list", P("ids", []string{"1", "2", "3"}), "users/ids:1;2;3"},
		{"single element list", Params{{Key: "ids", Value: List("7")}}, "users/ids:7"},
		{"order preserved", P("b", 1, "a", 2), "users/b:1,a:2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeEndpoint("users", tt.params); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEndpoint_Base64Keys(t *testing.T) {
	keys := []string{"logout_redirect", "course_completed_redirect", "redirect_url", "domain_url"}
	original := "https://example.com/päth?q=1&r=ünïcode"

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			got := EncodeEndpoint("base", P(key, original))
			prefix := "base/" + key + ":"
			if !strings.HasPrefix(got, prefix) {
				t.Fatalf("got %q, want prefix %q", got, prefix)
			}
			decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, prefix))
			if err != nil {
				t.Fatalf("value is not base64: %v", err)
			}
			if string(decoded) != original {
				t.Errorf("decoded %q, want %q", decoded, original)
			}
		})
	}
}

func TestEndpoint_Base64AppliesAfterListJoin(t *testing.T) {
	got := EncodeEndpoint("x", Params{{Key: "redirect_url", Value: List("a", "b")}})
	want := "x/redirect_url:" + base64.StdEncoding.EncodeToString([]byte("a;b"))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEndpoint_CustomAllowlist(t *testing.T) {
	enc := &Encoder{Base64Keys: map[string]bool{"secret": true}}
	got := enc.Endpoint("x", P("secret", "x", "logout_redirect", "x"))
	if got != "x/secret:eA==,logout_redirect:x" {
		t.Errorf("got %q", got)
	}
}

func TestEndpoint_NilEncoderSkipsAllowlists(t *testing.T) {
	var enc *Encoder
	if got := enc.Endpoint("x", P("logout_redirect", "x")); got != "x/logout_redirect:x" {
		t.Errorf("got %q", got)
	}
}
