package reconcile

import (
	"sort"
	"strings"
)

// Scope selects which sets a run touches. The zero value selects every set.
type Scope struct {
	subset bool
	codes  map[string]struct{}
}

// All returns the scope covering every set in the catalog.
func All() Scope {
	return Scope{}
}

// Only returns a scope restricted to the given set codes. Codes are matched
// case-insensitively. An Only scope with no codes includes nothing.
func Only(codes ...string) Scope {
	s := Scope{subset: true, codes: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		code = NormalizeCode(code)
		if code == "" {
			continue
		}
		s.codes[code] = struct{}{}
	}
	return s
}

// ParseScope maps operator input to a scope: no codes means every set.
func ParseScope(codes []string) Scope {
	if len(codes) == 0 {
		return All()
	}
	return Only(codes...)
}

// NormalizeCode returns the canonical upper-case form of a set code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsAll reports whether the scope covers every set.
func (s Scope) IsAll() bool {
	return !s.subset
}

// Includes reports whether records of the given set belong to the run.
func (s Scope) Includes(code string) bool {
	if !s.subset {
		return true
	}
	_, ok := s.codes[NormalizeCode(code)]
	return ok
}

// Codes returns the sorted codes of a subset scope, or nil for All.
func (s Scope) Codes() []string {
	if !s.subset {
		return nil
	}
	out := make([]string, 0, len(s.codes))
	for code := range s.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (s Scope) String() string {
	if !s.subset {
		return "all"
	}
	return strings.Join(s.Codes(), ",")
}
