// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package series

import (
	"encoding/json"
	"os"

	"github.com/mkuroi/novelpack/pkg/types"
)

type sourceKind int

const (
	kindRecord sourceKind = iota
	kindRecordList
	kindPaths
)

// Source is one of the three accepted input shapes for aggregation: a single
// parsed fragment, a list of parsed fragments, or a list of fragment file
// paths. The shape is fixed at construction and resolved exactly once.
type Source struct {
	kind    sourceKind
	record  types.ExportFragment
	records []types.ExportFragment
	paths   []string
}

// FromRecord wraps a single already-parsed fragment.
func FromRecord(f types.ExportFragment) Source {
	return Source{kind: kindRecord, record: f}
}

// FromRecords wraps an ordered list of already-parsed fragments.
func FromRecords(fs []types.ExportFragment) Source {
	return Source{kind: kindRecordList, records: fs}
}

// FromPath wraps a single fragment file path.
func FromPath(p string) Source {
	return Source{kind: kindPaths, paths: []string{p}}
}

// FromPaths wraps an ordered list of fragment file paths. The parsed
// contents are concatenated in path order.
func FromPaths(ps []string) Source {
	return Source{kind: kindPaths, paths: ps}
}

// flatten resolves the source into one flat ordered sequence of raw
// fragments. An unparsable file is reported as MalformedInputError carrying
// the offending path.
func (s Source) flatten() ([]types.ExportFragment, error) {
	switch s.kind {
	case kindRecord:
		return []types.ExportFragment{s.record}, nil
	case kindRecordList:
		return append([]types.ExportFragment(nil), s.records...), nil
	}

	var flat []types.ExportFragment
	for _, p := range s.paths {
		frags, err := readFragmentFile(p)
		if err != nil {
			return nil, err
		}
		flat = append(flat, frags...)
	}
	return flat, nil
}

// readFragmentFile parses one export file, which holds either a fragment
// array or a single fragment object.
func readFragmentFile(path string) ([]types.ExportFragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.MalformedInputError{Path: path, Reason: "unreadable", Cause: err}
	}
	var list []types.ExportFragment
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var one types.ExportFragment
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, &types.MalformedInputError{Path: path, Reason: "unparsable JSON", Cause: err}
	}
	return []types.ExportFragment{one}, nil
}
