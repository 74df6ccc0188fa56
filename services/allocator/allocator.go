package allocator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidPrefix = errors.New("prefix must be 2-3 lowercase alphanumeric characters")
	// ErrIDSpaceExhausted means 10000 candidates for one base were already
	// taken. The caller must fail the operation, not invent an unsafe id.
	ErrIDSpaceExhausted = errors.New("too many duplicate order IDs")
)

const maxOrderIDProbes = 10000

var prefixPattern = regexp.MustCompile(`^[a-z0-9]{2,3}$`)

// ValidPrefix reports whether p can prefix item ids in a category.
func ValidPrefix(p string) bool {
	return prefixPattern.MatchString(p)
}

// NextItemID returns the lowest free id of the form <prefix>_NNN given the
// ids already used in the category. Gaps left by deleted items are reused,
// so ids stay compact. existingIDs is never mutated.
func NextItemID(prefix string, existingIDs []string) (string, error) {
	if !ValidPrefix(prefix) {
		return "", ErrInvalidPrefix
	}

	used := make(map[int]bool, len(existingIDs))
	for _, id := range existingIDs {
		rest, ok := strings.CutPrefix(id, prefix+"_")
		if !ok || !allDigits(rest) {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			continue
		}
		used[n] = true
	}

	next := 1
	for used[next] {
		next++
	}
	return fmt.Sprintf("%s_%03d", prefix, next), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SlugifyName lowers a customer name to an ASCII kebab slug suitable as an
// order document id. An empty result falls back to "order".
func SlugifyName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = regexp.MustCompile(`\s+`).ReplaceAllString(slug, "-")
	slug = regexp.MustCompile(`[^a-z0-9-]`).ReplaceAllString(slug, "")
	slug = regexp.MustCompile(`-+`).ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "order"
	}
	return slug
}

// ExistsFunc probes the backing store for an id. It is side-effecting and
// the probe-then-write sequence is not atomic: two submissions with the same
// base can both see a candidate as free. The design accepts this as a
// bounded, logged risk.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// EnsureUniqueOrderID returns the first of base, base1, base2, ... that the
// exists probe reports free, giving up after 10000 attempts.
func EnsureUniqueOrderID(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for i := 0; i < maxOrderIDProbes; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probing order id %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i+1)
	}
	return "", ErrIDSpaceExhausted
}
