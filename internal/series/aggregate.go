// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package series normalizes raw crawler export fragments into the canonical
// series record consumed by the rest of the pipeline.
package series

import (
	"fmt"
	"sort"

	"github.com/mkuroi/novelpack/pkg/types"
)

// Aggregate merges the fragments of src into one canonical SeriesRecord.
//
// Series-level fields come from the first fragment in the flattened
// sequence; later fragments contribute only novel entries. A nil seriesId
// falls back to the first fragment's own id, and an absent or empty
// seriesTitle falls back to its title. Fragments without novel metadata are
// skipped. When several fragments carry the same novel id the last
// occurrence wins, matching the upstream export tool. The resulting novel
// list is sorted ascending by novel id regardless of input order.
func Aggregate(src Source) (*types.SeriesRecord, error) {
	frags, err := src.flatten()
	if err != nil {
		return nil, err
	}
	if len(frags) == 0 {
		return nil, &types.MalformedInputError{Reason: "no fragments in input"}
	}

	first := frags[0]
	if first.User == "" {
		return nil, &types.MalformedInputError{Reason: "first fragment has no user field"}
	}
	seriesID := first.SeriesID
	if seriesID == nil {
		seriesID = first.ID
	}
	if seriesID == nil {
		return nil, &types.MalformedInputError{Reason: "first fragment has neither seriesId nor id"}
	}
	seriesTitle := first.Title
	if first.SeriesTitle != nil && *first.SeriesTitle != "" {
		seriesTitle = *first.SeriesTitle
	}

	byID := make(map[int]types.NovelRecord)
	for _, frag := range frags {
		if frag.NovelMeta == nil {
			continue
		}
		n := novelFromMeta(frag.NovelMeta)
		byID[n.NovelID] = n
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	novels := make([]types.NovelRecord, len(ids))
	for i, id := range ids {
		novels[i] = byID[id]
	}

	return &types.SeriesRecord{
		AuthorID:    string(first.UserID),
		AuthorName:  first.User,
		SeriesID:    *seriesID,
		SeriesTitle: seriesTitle,
		Novels:      novels,
	}, nil
}

// novelFromMeta derives a NovelRecord from one fragment's novel metadata,
// synthesizing the local image names: "{id}.{ext}" for the cover and
// "{id}-{key}.{ext}" for each embedded image.
func novelFromMeta(meta *types.NovelMeta) types.NovelRecord {
	n := types.NovelRecord{
		NovelID:        meta.ID,
		Title:          meta.Title,
		Description:    meta.Description,
		CoverImageName: fmt.Sprintf("%d.%s", meta.ID, types.ImageExt(meta.CoverURL)),
	}
	if meta.EmbeddedImages != nil {
		n.EmbeddedImages = make(map[string]string, len(meta.EmbeddedImages))
		for key, url := range meta.EmbeddedImages {
			n.EmbeddedImages[key] = fmt.Sprintf("%d-%s.%s", meta.ID, key, types.ImageExt(url))
		}
	}
	return n
}
