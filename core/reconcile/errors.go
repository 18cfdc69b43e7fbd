package reconcile

import (
	"fmt"
	"strings"
)

// FetchError reports a failure talking to the external catalog: transport errors,
// non-success statuses, and payloads that cannot be decoded.
type FetchError struct {
	URL    string
	Status int
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("fetch failed")
	if e.URL != "" {
		fmt.Fprintf(&b, " for %s", e.URL)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// ScopeError reports requested set codes that do not exist locally.
type ScopeError struct {
	Missing []string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("unknown set codes in scope: %s", strings.Join(e.Missing, ", "))
}

// RecordError reports a catalog record that lacks a field with no fallback.
type RecordError struct {
	RecordID string
	Face     int
	Field    string
	Reason   string
}

func (e *RecordError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("invalid record %s (face %d): %s %s", id, e.Face, e.Field, e.Reason)
}

// StorageError wraps a persistence failure. Returning one from inside a unit of
// work rolls the transaction back.
type StorageError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s failed: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
