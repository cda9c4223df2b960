package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// printJSON writes v as indented JSON, optionally projected through a
// JMESPath expression.
func printJSON(w io.Writer, v any, query string) error {
	out := v
	if query = strings.TrimSpace(query); query != "" {
		projected, err := project(v, query)
		if err != nil {
			return err
		}
		out = projected
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// project evaluates query against the JSON form of v.
func project(v any, query string) (any, error) {
	if _, err := jmespath.Compile(query); err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode for query: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode for query: %w", err)
	}

	result, err := jmespath.Search(query, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate query %q: %w", query, err)
	}
	return result, nil
}
