package cmd

import (
	"strings"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/validation"
)

// parseParams turns "key=value" arguments into ordered Params. The literal
// values true and false become booleans; everything else is sent as typed.
func parseParams(args []string) (api.Params, error) {
	params := make(api.Params, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, usagef("invalid argument %q: expected key=value", arg)
		}
		params = params.Add(key, paramValue(value))
	}
	return params, nil
}

func paramValue(raw string) api.Value {
	switch raw {
	case "true":
		return api.Bool(true)
	case "false":
		return api.Bool(false)
	default:
		return api.String(raw)
	}
}

// parseID parses a positive resource ID.
func parseID(raw string) (int, error) {
	id, err := validation.ParsePositiveInt(raw, "ID")
	if err != nil {
		return 0, &usageError{msg: err.Error()}
	}
	return id, nil
}

// parseIDList parses "1,2,3" (spaces allowed) into IDs, dropping duplicates.
func parseIDList(raw string) ([]int, error) {
	seen := make(map[int]bool)
	var ids []int
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, usagef("no IDs given")
	}
	return ids, nil
}
