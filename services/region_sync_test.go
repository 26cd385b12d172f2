package services

import (
	"testing"

	"github.com/camden-git/articlesbackend/models"
	"github.com/stretchr/testify/assert"
)

func links(ids ...uint) []models.ArticleRegion {
	out := make([]models.ArticleRegion, len(ids))
	for i, id := range ids {
		out[i] = models.ArticleRegion{ArticleID: 1, RegionID: id, Position: i}
	}
	return out
}

func TestPlanRegionSync(t *testing.T) {
	tests := []struct {
		name    string
		current []models.ArticleRegion
		target  []uint
		want    regionSyncPlan
	}{
		{
			name:   "attach into empty association",
			target: []uint{3, 1},
			want:   regionSyncPlan{attach: []regionLink{{3, 0}, {1, 1}}},
		},
		{
			name:    "clear",
			current: links(1, 2),
			target:  []uint{},
			want:    regionSyncPlan{detach: []uint{1, 2}},
		},
		{
			name:    "unchanged",
			current: links(1, 2),
			target:  []uint{1, 2},
			want:    regionSyncPlan{},
		},
		{
			name:    "reorder only",
			current: links(1, 2),
			target:  []uint{2, 1},
			want:    regionSyncPlan{move: []regionLink{{1, 1}, {2, 0}}},
		},
		{
			name:    "detach attach and shift",
			current: links(1, 2),
			target:  []uint{5, 2},
			want: regionSyncPlan{
				detach: []uint{1},
				move:   nil,
				attach: []regionLink{{5, 0}},
			},
		},
		{
			name:    "duplicates keep first position",
			current: nil,
			target:  []uint{4, 4, 7, 4},
			want:    regionSyncPlan{attach: []regionLink{{4, 0}, {7, 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planRegionSync(tt.current, tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, dedupeIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs(nil))
}
