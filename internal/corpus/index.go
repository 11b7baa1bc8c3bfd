package corpus

import (
	"errors"
	"sort"

	"mockmate/interview/internal/models"
)

// ErrNoCoverage means no question matches the requested combination even
// after falling back to the general pool. Callers surface this as a
// user-visible warning, not a session failure.
var ErrNoCoverage = errors.New("no question coverage for requested combination")

type indexKey struct {
	track      models.Track
	style      models.CompanyStyle
	difficulty models.Difficulty
}

// Index is the in-memory question index keyed by (track, company_style,
// difficulty). Built once at startup, read-only afterwards, safe for
// unsynchronized concurrent reads.
type Index struct {
	byKey map[indexKey][]*models.Question
	byID  map[string]*models.Question
	all   []*models.Question
}

// Coverage answers how many questions exist for a combination, and how many
// the general-style fallback pool would contribute.
type Coverage struct {
	Count                int `json:"count"`
	FallbackGeneralCount int `json:"fallback_general_count"`
}

func NewIndex(questions []models.Question) *Index {
	ix := &Index{
		byKey: make(map[indexKey][]*models.Question),
		byID:  make(map[string]*models.Question),
	}
	for i := range questions {
		q := &questions[i]
		key := indexKey{q.Track, q.CompanyStyle, q.Difficulty}
		ix.byKey[key] = append(ix.byKey[key], q)
		ix.byID[q.ID] = q
		ix.all = append(ix.all, q)
	}
	// stable selection order across process restarts
	for _, qs := range ix.byKey {
		sort.Slice(qs, func(a, b int) bool { return qs[a].ID < qs[b].ID })
	}
	sort.Slice(ix.all, func(a, b int) bool { return ix.all[a].ID < ix.all[b].ID })
	return ix
}

func (ix *Index) Len() int { return len(ix.all) }

// ByID looks up a question by its corpus ID.
func (ix *Index) ByID(id string) (*models.Question, bool) {
	q, ok := ix.byID[id]
	return q, ok
}

// Coverage reports exact-match and general-fallback counts for a combination.
// Behavioral-tagged questions are excluded unless includeBehavioral is set.
func (ix *Index) Coverage(track models.Track, style models.CompanyStyle, difficulty models.Difficulty, includeBehavioral bool) Coverage {
	count := func(key indexKey) int {
		n := 0
		for _, q := range ix.byKey[key] {
			if q.IsBehavioral() && !includeBehavioral {
				continue
			}
			n++
		}
		return n
	}

	cov := Coverage{Count: count(indexKey{track, style, difficulty})}
	if style != models.StyleGeneral {
		cov.FallbackGeneralCount = count(indexKey{track, models.StyleGeneral, difficulty})
	}
	return cov
}

// Select picks the first not-yet-asked technical question for the exact
// combination, falling back to the general pool, then ErrNoCoverage.
func (ix *Index) Select(track models.Track, style models.CompanyStyle, difficulty models.Difficulty, excluded map[string]bool) (*models.Question, error) {
	if q := ix.pick(indexKey{track, style, difficulty}, excluded, false); q != nil {
		return q, nil
	}
	if style != models.StyleGeneral {
		if q := ix.pick(indexKey{track, models.StyleGeneral, difficulty}, excluded, false); q != nil {
			return q, nil
		}
	}
	return nil, ErrNoCoverage
}

// SelectBehavioral picks a behavioral-tagged question. Behavioral questions
// may live under any track/company folder as long as they carry the tag, so
// matching prefers the requested style, then general, then anything tagged.
func (ix *Index) SelectBehavioral(style models.CompanyStyle, difficulty models.Difficulty, excluded map[string]bool) (*models.Question, error) {
	var styleMatch, generalMatch, anyMatch *models.Question
	for _, q := range ix.all {
		if !q.IsBehavioral() || excluded[q.ID] {
			continue
		}
		switch {
		case q.CompanyStyle == style && q.Difficulty == difficulty && styleMatch == nil:
			styleMatch = q
		case q.CompanyStyle == models.StyleGeneral && q.Difficulty == difficulty && generalMatch == nil:
			generalMatch = q
		case anyMatch == nil:
			anyMatch = q
		}
	}
	switch {
	case styleMatch != nil:
		return styleMatch, nil
	case generalMatch != nil:
		return generalMatch, nil
	case anyMatch != nil:
		return anyMatch, nil
	}
	return nil, ErrNoCoverage
}

func (ix *Index) pick(key indexKey, excluded map[string]bool, includeBehavioral bool) *models.Question {
	for _, q := range ix.byKey[key] {
		if excluded[q.ID] {
			continue
		}
		if q.IsBehavioral() && !includeBehavioral {
			continue
		}
		return q
	}
	return nil
}
