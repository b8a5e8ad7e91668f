package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCounts reads "상품A=3, 상품B:1" into per-product counts. Repeated
// names are summed.
func ParseCounts(raw string) (map[string]int, error) {
	counts := make(map[string]int)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return counts, nil
	}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			name, value, ok = strings.Cut(part, ":")
		}
		if !ok {
			return nil, fmt.Errorf("expected name=count, got %q", part)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("missing product name in %q", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s: %w", name, err)
		}
		counts[name] += n
	}
	return counts, nil
}
