package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Banks returns the full bank directory: the fixed baseline list, the
// user-added custom names, and every bank name observed on current
// records, deduplicated and sorted.
func (s *Store) Banks(ctx context.Context) ([]string, error) {
	custom, err := s.banks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing custom banks: %w", err)
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, b := range s.baseline {
		add(b)
	}
	for _, b := range custom {
		add(b)
	}

	s.mu.RLock()
	for i := range s.checks {
		add(s.checks[i].BankName)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out, nil
}

// AddCustomBank normalizes the name (upper-case, trimmed) and appends it
// to the durable custom list. Adding a name already on the custom list is
// a no-op. The bank list persists independently of the record snapshot.
func (s *Store) AddCustomBank(ctx context.Context, name string) (string, error) {
	normalized := NormalizeBank(name)
	if normalized == "" {
		return "", nil
	}

	existing, err := s.banks.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing custom banks: %w", err)
	}
	for _, b := range existing {
		if b == normalized {
			return normalized, nil
		}
	}

	if err := s.banks.Add(ctx, normalized); err != nil {
		return "", fmt.Errorf("saving custom bank: %w", err)
	}

	s.log.Info(ctx, "custom bank added", "name", normalized)
	return normalized, nil
}

// RemoveCustomBank prunes a name from the custom list. Records already
// referencing the name keep it.
func (s *Store) RemoveCustomBank(ctx context.Context, name string) (bool, error) {
	return s.banks.Remove(ctx, NormalizeBank(name))
}

// NormalizeBank is the canonical form bank names are stored in.
func NormalizeBank(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
