package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a resource identifier. The API sends ids as JSON strings ("12")
// on most endpoints and as numbers on a few; both decode into ID.
type ID int

// UnmarshalJSON accepts 12, "12" and "".
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n)
	return nil
}

// Course is the subset of course fields the CLI works with.
type Course struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	CategoryID  ID     `json:"category_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// User is the subset of user fields the CLI works with.
type User struct {
	ID        ID     `json:"id"`
	Login     string `json:"login"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"`
	Status    string `json:"status"`
}

// DisplayName returns "First Last", falling back to the login.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Login
	}
	return name
}

// Decode converts the response body into v by round-tripping it through JSON.
func (r *Response) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("nil response")
	}
	if text, ok := r.Body.(string); ok {
		return fmt.Errorf("unexpected API response format (not JSON): %.80q", text)
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	return nil
}
