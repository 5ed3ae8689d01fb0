package database

import (
	"fmt"
	"strings"
)

// QueryRequest is one SQL statement with positional `?` placeholders and its bind values.
type QueryRequest struct {
	// Label names the statement in logs and metrics.
	Label    string
	Template string
	Params   []interface{}
}

// NewQuery builds a QueryRequest.
func NewQuery(label, template string, params ...interface{}) QueryRequest {
	return QueryRequest{Label: label, Template: template, Params: params}
}

// Validate checks that every placeholder has exactly one bind value.
func (q QueryRequest) Validate() error {
	if strings.TrimSpace(q.Template) == "" {
		return fmt.Errorf("query %q: empty template", q.Label)
	}
	if n := CountPlaceholders(q.Template); n != len(q.Params) {
		return fmt.Errorf("query %q: template has %d placeholders but %d params were bound", q.Label, n, len(q.Params))
	}
	return nil
}

// CountPlaceholders counts `?` markers outside quoted literals and identifiers.
func CountPlaceholders(template string) int {
	var (
		count int
		quote rune
	)
	for _, r := range template {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '?':
			count++
		}
	}
	return count
}
