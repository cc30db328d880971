package analytics

import (
	"math"
	"sort"

	"github.com/pulseup/engage-server/internal/scoring"
)

// MinCohortResponses is the response floor a shop must meet to enter the
// percentile cohort. Shops below it are excluded entirely, never scored
// as zero.
const MinCohortResponses = 3

// minCohortSize is the smallest cohort a percentile is meaningful for.
const minCohortSize = 2

// PercentileResult positions one shop inside its industry cohort.
type PercentileResult struct {
	Percentile int     `json:"percentile"`
	Rank       int     `json:"rank"`
	TotalShops int     `json:"total_shops"`
	Score      float64 `json:"score"`
}

type shopScore struct {
	shopID int64
	score  float64
}

// RankShop computes the overall score of every same-industry shop with
// at least MinCohortResponses responses and positions shopID inside that
// cohort. Percentile counts cohort shops strictly below the shop's
// score. Ranks are 1-based positions in the descending sort; ties occupy
// adjacent ranks, decided by sort stability over ascending shop id.
// Returns ErrInsufficientData when the shop itself misses the response
// floor or the cohort holds fewer than two members.
func RankShop(shopID int64, cohort map[int64][]scoring.Response) (*PercentileResult, error) {
	if len(cohort[shopID]) < MinCohortResponses {
		return nil, ErrInsufficientData
	}

	ids := make([]int64, 0, len(cohort))
	for id := range cohort {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	scores := make([]shopScore, 0, len(ids))
	for _, id := range ids {
		responses := cohort[id]
		if len(responses) < MinCohortResponses {
			continue
		}
		overall := scoring.OverallScore(responses)
		if overall == nil {
			continue
		}
		scores = append(scores, shopScore{shopID: id, score: *overall})
	}
	if len(scores) < minCohortSize {
		return nil, ErrInsufficientData
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	var own float64
	rank := 0
	for i, s := range scores {
		if s.shopID == shopID {
			rank = i + 1
			own = s.score
			break
		}
	}
	if rank == 0 {
		// The shop met the floor above, so its overall score had no
		// answered driver question at all.
		return nil, ErrInsufficientData
	}

	below := 0
	for _, s := range scores {
		if s.score < own {
			below++
		}
	}

	return &PercentileResult{
		Percentile: int(math.Round(float64(below) / float64(len(scores)) * 100)),
		Rank:       rank,
		TotalShops: len(scores),
		Score:      own,
	}, nil
}
