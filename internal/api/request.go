package api

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const apiPrefix = "/api/v1/"

// EncodedRequest is a fully built request ready for a TransportFunc.
type EncodedRequest struct {
	URL     string
	Method  string
	Header  http.Header
	Timeout time.Duration
	Body    string
	HasBody bool
}

// Redacted returns a copy safe for logging: the Authorization value is masked.
func (r *EncodedRequest) Redacted() *EncodedRequest {
	cp := *r
	cp.Header = r.Header.Clone()
	if cp.Header.Get("Authorization") != "" {
		cp.Header.Set("Authorization", "SECRET")
	}
	return &cp
}

// Build creates the transport request for endpoint. With no data the request
// is a GET; otherwise data is form encoded into a POST body.
func (e *Encoder) Build(endpoint string, opts Options, data Params) *EncodedRequest {
	req := &EncodedRequest{
		URL:    "https://" + opts.Domain + apiPrefix + endpoint,
		Header: http.Header{},
		Method: http.MethodGet,
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", basicAuth(opts.APIKey))

	if opts.Timeout != 0 {
		req.Timeout = opts.Timeout
	}

	if len(data) > 0 {
		req.Method = http.MethodPost
		req.Body = e.formBody(data)
		req.HasBody = true
	}
	return req
}

// basicAuth encodes the API key as the Basic username with an empty password.
func basicAuth(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":"))
}

// formBody renders data as "&k1=v1&k2=v2". Every pair is prefixed with "&",
// including the first.
func (e *Encoder) formBody(data Params) string {
	var b strings.Builder
	for _, p := range data {
		b.WriteByte('&')
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(encodeURIComponent(e.bodyValue(p)))
	}
	return b.String()
}

// bodyValue renders a form value. Lists are comma separated here, unlike
// endpoint paths where "," already separates pairs.
func (e *Encoder) bodyValue(p Param) string {
	if p.Value.kind == kindList {
		return strings.Join(p.Value.items, ",")
	}
	if e != nil && e.YesNoKeys[p.Key] {
		return p.Value.render("yes", "no")
	}
	return p.Value.render("on", "off")
}

const upperhex = "0123456789ABCDEF"

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
// url.QueryEscape differs on space and on !*'() so it cannot be used here.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// BuildRequest is Build using DefaultEncoder.
func BuildRequest(endpoint string, opts Options, data Params) *EncodedRequest {
	return DefaultEncoder().Build(endpoint, opts, data)
}
