package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseFloats parses a comma-separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q", p, s)
		}
		out = append(out, v)
	}
	return out, nil
}
