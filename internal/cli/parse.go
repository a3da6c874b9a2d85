package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/collatz/pkg/domain"
)

// ParseSeed parses a positive integer seed.
func ParseSeed(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("seed %q: %w", s, domain.ErrInvalidInput)
	}
	return n, nil
}

// ParseLimit parses a display limit. "0", "none" and "unbounded" disable truncation.
func ParseLimit(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "unbounded", "all":
		return domain.Unbounded, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limit %q: %w", s, domain.ErrInvalidInput)
	}
	return n, nil
}
