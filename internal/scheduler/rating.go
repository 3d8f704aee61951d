package scheduler

// Rating is the user's self-assessment of recall for the current card.
// It travels over the wire in its string form.
type Rating string

const (
	Again Rating = "again"
	Hard  Rating = "hard"
	Good  Rating = "good"
)

// IsValid reports whether r is one of the three known ratings.
func (r Rating) IsValid() bool {
	switch r {
	case Again, Hard, Good:
		return true
	}
	return false
}

func (r Rating) String() string {
	return string(r)
}
