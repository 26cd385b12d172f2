package services

import (
	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/repository"
)

type regionLink struct {
	regionID uint
	position int
}

// regionSyncPlan is the diff between the stored association and the wanted one.
type regionSyncPlan struct {
	detach []uint
	move   []regionLink
	attach []regionLink
}

func (p regionSyncPlan) empty() bool {
	return len(p.detach) == 0 && len(p.move) == 0 && len(p.attach) == 0
}

// dedupeIDs keeps the first occurrence of every id.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// planRegionSync computes how to turn current into target, where position is the index in target.
func planRegionSync(current []models.ArticleRegion, target []uint) regionSyncPlan {
	target = dedupeIDs(target)
	want := make(map[uint]int, len(target))
	for pos, id := range target {
		want[id] = pos
	}

	var plan regionSyncPlan
	have := make(map[uint]int, len(current))
	for _, link := range current {
		have[link.RegionID] = link.Position
		pos, keep := want[link.RegionID]
		if !keep {
			plan.detach = append(plan.detach, link.RegionID)
			continue
		}
		if pos != link.Position {
			plan.move = append(plan.move, regionLink{regionID: link.RegionID, position: pos})
		}
	}
	for pos, id := range target {
		if _, ok := have[id]; !ok {
			plan.attach = append(plan.attach, regionLink{regionID: id, position: pos})
		}
	}
	return plan
}

// syncRegions replaces the article's region association with target, in order.
// Detached regions are left in place; only the link rows change.
func syncRegions(articles repository.ArticleRepository, articleID uint, target []uint) error {
	current, err := articles.RegionLinks(articleID)
	if err != nil {
		return err
	}
	plan := planRegionSync(current, target)
	if plan.empty() {
		return nil
	}
	if err := articles.DetachRegions(articleID, plan.detach); err != nil {
		return err
	}
	for _, l := range plan.move {
		if err := articles.MoveRegion(articleID, l.regionID, l.position); err != nil {
			return err
		}
	}
	for _, l := range plan.attach {
		if err := articles.AttachRegion(articleID, l.regionID, l.position); err != nil {
			return err
		}
	}
	return nil
}
