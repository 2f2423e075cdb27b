package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// FilterStateVersion is written into every encoded FilterState.
// Version 1 predates project grouping and custom project order.
const FilterStateVersion = 2

type filterStateAlias FilterState

type filterStateWire struct {
	Version int `json:"version"`
	*filterStateAlias
}

func (s FilterState) MarshalJSON() ([]byte, error) {
	c := s.Clone()
	if c.QuickView == "" {
		c.QuickView = ViewToday
	}
	if c.ProjectGroupingMode == "" {
		c.ProjectGroupingMode = GroupPrioritizeOverdue
	}
	return json.Marshal(filterStateWire{
		Version:          FilterStateVersion,
		filterStateAlias: (*filterStateAlias)(&c),
	})
}

// UnmarshalJSON accepts any version up to FilterStateVersion. Fields a
// version does not know about take their defaults.
func (s *FilterState) UnmarshalJSON(data []byte) error {
	decoded := filterStateAlias(DefaultFilterState())
	decoded.CustomProjectOrderIDs = nil
	wire := filterStateWire{filterStateAlias: &decoded}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Version > FilterStateVersion {
		return fmt.Errorf("unsupported filter state version %d", wire.Version)
	}

	out := FilterState(decoded)
	if _, ok := ParseQuickView(string(out.QuickView)); !ok {
		out.QuickView = ViewToday
	}
	if out.ProjectGroupingMode != GroupPrioritizeOverdue && out.ProjectGroupingMode != GroupByProjects {
		out.ProjectGroupingMode = GroupPrioritizeOverdue
	}
	if out.CustomProjectOrderIDs == nil {
		out.CustomProjectOrderIDs = []uuid.UUID{}
	}
	*s = out
	return nil
}

func EncodeFilterState(s FilterState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter state: %w", err)
	}
	return data, nil
}

// DecodeFilterState never fails to produce a usable state: malformed input
// yields DefaultFilterState alongside the decode error.
func DecodeFilterState(data []byte) (FilterState, error) {
	var s FilterState
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultFilterState(), fmt.Errorf("failed to decode filter state: %w", err)
	}
	return s, nil
}
