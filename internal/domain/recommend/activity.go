package recommend

import (
	"sort"

	"github.com/okian/mingle/internal/domain/keyword"
	"github.com/okian/mingle/internal/domain/model"
)

// scoredActivity pairs a candidate with its two similarity components.
type scoredActivity struct {
	activity     model.Activity
	keywordScore float64
	typeScore    float64
}

func (s scoredActivity) total(blend ActivityBlend) float64 {
	return s.keywordScore*blend.Keyword + s.typeScore*blend.Type
}

// novel reports whether the candidate shares nothing with the current set.
func (s scoredActivity) novel() bool {
	return s.keywordScore == 0 && s.typeScore == 0
}

// Activities recommends up to three activities against the user's current
// set: the closest match, a moderately similar pick from the middle of the
// ranking, and a deliberately different one. Slots are not deduplicated;
// with few candidates the same activity may fill more than one.
func (e *Engine) Activities(all, current []model.Activity) []model.Activity {
	currentIDs := make(map[string]struct{}, len(current))
	currentTexts := make([]string, 0, len(current))
	for _, act := range current {
		currentIDs[act.ID] = struct{}{}
		currentTexts = append(currentTexts, act.Text())
	}
	currentTypes := unionTypes(current)
	currentKeywords := keyword.TokenizeAll(currentTexts...)

	scored := make([]scoredActivity, 0, len(all))
	for _, candidate := range all {
		if _, held := currentIDs[candidate.ID]; held {
			continue
		}
		shared := 0
		for _, t := range candidate.Types {
			if _, ok := currentTypes[t]; ok {
				shared++
			}
		}
		denom := len(currentTypes)
		if denom < 1 {
			denom = 1
		}
		scored = append(scored, scoredActivity{
			activity:     candidate,
			keywordScore: keyword.Jaccard(currentKeywords, keyword.Tokenize(candidate.Text())),
			typeScore:    float64(shared) / float64(denom),
		})
	}
	if len(scored) == 0 {
		return nil
	}

	sorted := make([]scoredActivity, len(scored))
	copy(sorted, scored)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].total(e.blend), sorted[j].total(e.blend)
		if ti != tj {
			return ti > tj
		}
		// Equal totals: surface the genuinely novel candidate first.
		return sorted[i].novel() && !sorted[j].novel()
	})

	picks := []model.Activity{sorted[0].activity}

	// The middle of the ranking is a deliberately "moderately similar"
	// pick once there are enough candidates to have a middle.
	if len(sorted) >= 3 {
		picks = append(picks, sorted[len(sorted)/2].activity)
	} else if len(sorted) >= 2 {
		picks = append(picks, sorted[1].activity)
	}

	if different, ok := e.pickDifferentActivity(sorted); ok {
		picks = append(picks, different)
	}
	return picks
}

// pickDifferentActivity selects the novelty slot: a uniformly random
// candidate scoring under the novelty ceiling on both components, falling
// back to the lowest-ranked candidate when nothing qualifies.
func (e *Engine) pickDifferentActivity(sorted []scoredActivity) (model.Activity, bool) {
	if len(sorted) == 0 {
		return model.Activity{}, false
	}
	bucket := make([]scoredActivity, 0, len(sorted))
	for _, s := range sorted {
		if s.keywordScore < noveltyCeiling && s.typeScore < noveltyCeiling {
			bucket = append(bucket, s)
		}
	}
	if len(bucket) == 0 {
		return sorted[len(sorted)-1].activity, true
	}
	return bucket[e.intn(len(bucket))].activity, true
}

// activitySimilarity computes the blended similarity between two activity
// collections. The friend recommender reuses this against candidate
// accounts; the denominator of the type overlap is the caller's type set.
func (e *Engine) activitySimilarity(mine, theirs []model.Activity) float64 {
	myTexts := make([]string, 0, len(mine))
	for _, act := range mine {
		myTexts = append(myTexts, act.Text())
	}
	theirTexts := make([]string, 0, len(theirs))
	for _, act := range theirs {
		theirTexts = append(theirTexts, act.Text())
	}
	myTypes := unionTypes(mine)
	theirTypes := unionTypes(theirs)

	keywordScore := keyword.Jaccard(keyword.TokenizeAll(myTexts...), keyword.TokenizeAll(theirTexts...))

	shared := 0
	for t := range theirTypes {
		if _, ok := myTypes[t]; ok {
			shared++
		}
	}
	denom := len(myTypes)
	if denom < 1 {
		denom = 1
	}
	typeScore := float64(shared) / float64(denom)

	return keywordScore*e.blend.Keyword + typeScore*e.blend.Type
}

// unionTypes merges the type tags of a whole activity collection.
func unionTypes(activities []model.Activity) map[model.ActivityType]struct{} {
	out := make(map[model.ActivityType]struct{})
	for _, act := range activities {
		for t := range act.TypeSet() {
			out[t] = struct{}{}
		}
	}
	return out
}
