package competency

import "perfhub/internal/domain/scoring"

// Classify fills the derived gap fields of an assignment.
func Classify(a Assignment) Assignment {
	a.Gap = a.RequiredLevel - a.CurrentLevel
	a.GapCategory = scoring.ClassifyGap(a.RequiredLevel, a.CurrentLevel)
	return a
}

// levelScore maps an assignment to a 0-100 score: full credit at or above the
// required level, proportional credit below it.
func levelScore(a Assignment) float64 {
	if a.RequiredLevel <= 0 || a.CurrentLevel >= a.RequiredLevel {
		return 100
	}
	if a.CurrentLevel <= 0 {
		return 0
	}
	return float64(a.CurrentLevel) / float64(a.RequiredLevel) * 100
}

// WeightedScore aggregates an employee's assignments into one competency
// score.
func WeightedScore(assignments []Assignment) float64 {
	weighted := make([]scoring.WeightedScore, 0, len(assignments))
	for _, a := range assignments {
		weighted = append(weighted, scoring.WeightedScore{
			Score:  levelScore(a),
			Weight: float64(a.Weight),
		})
	}
	return scoring.Aggregate(weighted)
}

// GapMatrix buckets assignments per competency by gap severity.
func GapMatrix(assignments []Assignment) []GapCell {
	index := make(map[string]int)
	var cells []GapCell
	for _, a := range assignments {
		i, ok := index[a.CompetencyID]
		if !ok {
			i = len(cells)
			index[a.CompetencyID] = i
			cells = append(cells, GapCell{CompetencyID: a.CompetencyID, CompetencyName: a.CompetencyName})
		}
		switch scoring.ClassifyGap(a.RequiredLevel, a.CurrentLevel) {
		case scoring.GapMeets:
			cells[i].Meets++
		case scoring.GapClose:
			cells[i].Close++
		case scoring.GapSignificant:
			cells[i].Significant++
		}
	}
	return cells
}
