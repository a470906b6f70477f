package api

import (
	"encoding/base64"
	"strings"
)

// Encoder turns logical operations into endpoint strings and request bodies.
//
// Base64Keys lists endpoint parameters whose value is sent base64 encoded
// (redirect URLs). YesNoKeys lists body fields whose booleans are sent as
// "yes"/"no" rather than "on"/"off".
type Encoder struct {
	Base64Keys map[string]bool
	YesNoKeys  map[string]bool
}

// DefaultEncoder returns an Encoder carrying the allowlists the TalentLMS API expects.
func DefaultEncoder() *Encoder {
	return &Encoder{
		Base64Keys: map[string]bool{
			"logout_redirect":           true,
			"course_completed_redirect": true,
			"redirect_url":              true,
			"domain_url":                true,
		},
		YesNoKeys: map[string]bool{
			"permanent": true,
		},
	}
}

// Endpoint appends params to base as "base/k1:v1,k2:v2".
// With no params base is returned unchanged.
func (e *Encoder) Endpoint(base string, params Params) string {
	if len(params) == 0 {
		return base
	}

	pairs := make([]string, 0, len(params))
	for _, p := range params {
		val := e.pathValue(p)
		pairs = append(pairs, p.Key+":"+val)
	}
	return base + "/" + strings.Join(pairs, ",")
}

func (e *Encoder) pathValue(p Param) string {
	val := p.Value.render("on", "off")
	if e != nil && e.Base64Keys[p.Key] {
		val = base64.StdEncoding.EncodeToString([]byte(val))
	}
	return val
}

// EncodeEndpoint is Endpoint using DefaultEncoder.
func EncodeEndpoint(base string, params Params) string {
	return DefaultEncoder().Endpoint(base, params)
}
