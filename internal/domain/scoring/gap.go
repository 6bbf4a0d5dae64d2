package scoring

// GapCategory buckets the distance between a required competency level and an
// employee's current level.
type GapCategory string

const (
	GapMeets       GapCategory = "meets"
	GapClose       GapCategory = "close"
	GapSignificant GapCategory = "significant_gap"
)

// ClassifyGap classifies required minus current. Current at or above the
// requirement counts as meets, including when the requirement is exceeded.
func ClassifyGap(requiredLevel, currentLevel int) GapCategory {
	gap := requiredLevel - currentLevel
	switch {
	case gap <= 0:
		return GapMeets
	case gap == 1:
		return GapClose
	default:
		return GapSignificant
	}
}
