package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"perfhub/internal/domain/scoring"
	"perfhub/internal/platform/cache"
)

var ErrEmptyPopulation = errors.New("benchmark population is empty")

const cutPointTTL = 5 * time.Minute

// CutPoints are the percentile thresholds of one peer population snapshot.
type CutPoints struct {
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P90  float64 `json:"p90"`
	Size int     `json:"size"`
}

// Standing is an individual's relative position within the population.
type Standing struct {
	Score     float64              `json:"score"`
	Band      scoring.BandCategory `json:"band"`
	CutPoints CutPoints            `json:"cutPoints"`
}

type Service struct {
	Store StoreAPI
	Cache cache.Cache
}

func NewService(store StoreAPI, c cache.Cache) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{Store: store, Cache: c}
}

// CutPointsFor computes (or reads back) the percentile cut points for a
// cycle's peer population. Populations only move when evaluations close, so a
// short cache TTL is enough to absorb dashboard fan-out.
func (s *Service) CutPointsFor(ctx context.Context, tenantID, cycleID, departmentID string) (CutPoints, error) {
	key := fmt.Sprintf("benchmark:%s:%s:%s", tenantID, cycleID, departmentID)

	var cached CutPoints
	if err := s.Cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("benchmark cache read failed", "err", err)
	}

	scores, err := s.Store.PopulationScores(ctx, tenantID, cycleID, departmentID)
	if err != nil {
		return CutPoints{}, err
	}
	if len(scores) == 0 {
		return CutPoints{}, ErrEmptyPopulation
	}

	points := CutPoints{Size: len(scores)}
	points.P25, _ = scoring.Percentile(scores, 25)
	points.P50, _ = scoring.Percentile(scores, 50)
	points.P75, _ = scoring.Percentile(scores, 75)
	points.P90, _ = scoring.Percentile(scores, 90)

	if err := s.Cache.Set(ctx, key, points, cutPointTTL); err != nil {
		slog.Warn("benchmark cache write failed", "err", err)
	}
	return points, nil
}

// StandingFor classifies a score against its peer population.
func (s *Service) StandingFor(ctx context.Context, tenantID, cycleID, departmentID string, score float64) (Standing, error) {
	points, err := s.CutPointsFor(ctx, tenantID, cycleID, departmentID)
	if err != nil {
		return Standing{}, err
	}
	return Standing{
		Score:     score,
		Band:      scoring.ClassifyPosition(score, points.P25, points.P50, points.P75, points.P90),
		CutPoints: points,
	}, nil
}
