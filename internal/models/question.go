package models

// Question is one corpus entry. Questions are immutable once loaded and
// owned by the corpus index; they are never persisted or mutated at runtime.
type Question struct {
	ID           string       `json:"id" yaml:"-"`
	Track        Track        `json:"track" yaml:"-"`
	CompanyStyle CompanyStyle `json:"company_style" yaml:"-"`
	Difficulty   Difficulty   `json:"difficulty" yaml:"-"`
	Title        string       `json:"title" yaml:"title"`
	Prompt       string       `json:"prompt" yaml:"prompt"`
	Tags         []string     `json:"tags,omitempty" yaml:"tags"`
	Followups    []string     `json:"followups,omitempty" yaml:"followups"`
}

// HasTag reports whether the question carries the given tag.
func (q *Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsBehavioral reports whether the question is tagged behavioral. Behavioral
// questions may live under any track/company folder as long as tagged.
func (q *Question) IsBehavioral() bool {
	return q.HasTag(TagBehavioral)
}
