package models

import (
	"encoding/json"
	"fmt"

	"github.com/gokturk078/cektakip/internal/common"
)

// Snapshot is the unit of durability: the whole record list plus metadata.
// Persistence always writes the full snapshot, never individual records.
type Snapshot struct {
	Checks      []Check `json:"checks"`
	LastUpdated string  `json:"lastUpdated"`
	TotalChecks int     `json:"totalChecks"`
}

// Export is the bulk-export document. Same list, different metadata stamp.
type Export struct {
	Checks      []Check `json:"checks"`
	ExportedAt  string  `json:"exportedAt"`
	TotalChecks int     `json:"totalChecks"`
}

// ParseSnapshot decodes a snapshot document, rejecting payloads whose
// top-level checks field is missing or not a list.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedSnapshot, err)
	}
	if s.Checks == nil {
		return nil, fmt.Errorf("%w: missing checks list", common.ErrMalformedSnapshot)
	}
	return &s, nil
}

// Encode serializes the snapshot the way the durable document is stored
// (two-space indent, matching the format of existing files). A nil record
// list is written as an empty one so every encoded document satisfies
// ParseSnapshot.
func (s Snapshot) Encode() ([]byte, error) {
	if s.Checks == nil {
		s.Checks = []Check{}
	}
	return json.MarshalIndent(s, "", "  ")
}
