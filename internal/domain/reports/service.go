package reports

import (
	"context"

	"perfhub/internal/domain/benchmark"
	"perfhub/internal/domain/sla"
)

type EmployeeDashboard struct {
	GoalsTotal    int      `json:"goalsTotal"`
	GoalsApproved int      `json:"goalsApproved"`
	AvgProgress   float64  `json:"avgProgress"`
	Composite     *float64 `json:"composite,omitempty"`
	Standing      string   `json:"standing,omitempty"`
}

type ManagerDashboard struct {
	TeamSize         int `json:"teamSize"`
	PendingApprovals int `json:"pendingApprovals"`
}

type HRDashboard struct {
	HeadCount     int              `json:"headCount"`
	ActiveCycles  int              `json:"activeCycles"`
	PendingByKind map[string]int   `json:"pendingByKind"`
	SLA           []sla.KindReport `json:"sla"`
}

type Service struct {
	Store     *Store
	SLA       *sla.Service
	Benchmark *benchmark.Service
}

func NewService(store *Store, slaSvc *sla.Service, benchSvc *benchmark.Service) *Service {
	return &Service{Store: store, SLA: slaSvc, Benchmark: benchSvc}
}

func (s *Service) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	return s.Store.EmployeeIDByUserID(ctx, tenantID, userID)
}

func (s *Service) Employee(ctx context.Context, tenantID, employeeID string) (EmployeeDashboard, error) {
	var dash EmployeeDashboard
	var err error
	dash.GoalsTotal, dash.GoalsApproved, err = s.Store.GoalCounts(ctx, tenantID, employeeID)
	if err != nil {
		return dash, err
	}
	dash.AvgProgress, err = s.Store.AvgGoalProgress(ctx, tenantID, employeeID)
	if err != nil {
		return dash, err
	}

	score, ok, err := s.Store.LatestComposite(ctx, tenantID, employeeID)
	if err != nil {
		return dash, err
	}
	if !ok {
		return dash, nil
	}
	dash.Composite = &score

	if s.Benchmark != nil {
		standing, err := s.Benchmark.StandingFor(ctx, tenantID, "", "", score)
		if err == nil {
			dash.Standing = string(standing.Band)
		}
	}
	return dash, nil
}

func (s *Service) Manager(ctx context.Context, tenantID, managerEmployeeID string) (ManagerDashboard, error) {
	var dash ManagerDashboard
	var err error
	dash.TeamSize, err = s.Store.TeamSize(ctx, tenantID, managerEmployeeID)
	if err != nil {
		return dash, err
	}
	dash.PendingApprovals, err = s.Store.TeamPendingGoals(ctx, tenantID, managerEmployeeID)
	return dash, err
}

func (s *Service) HR(ctx context.Context, tenantID string) (HRDashboard, error) {
	var dash HRDashboard
	var err error
	dash.HeadCount, err = s.Store.HeadCount(ctx, tenantID)
	if err != nil {
		return dash, err
	}
	dash.ActiveCycles, err = s.Store.ActiveCycles(ctx, tenantID)
	if err != nil {
		return dash, err
	}
	dash.PendingByKind, err = s.Store.PendingByKind(ctx, tenantID)
	if err != nil {
		return dash, err
	}
	if s.SLA != nil {
		dash.SLA, err = s.SLA.ReportAll(ctx, tenantID)
		if err != nil {
			return dash, err
		}
	}
	return dash, nil
}

func (s *Service) BenchmarkPanel(ctx context.Context, tenantID, cycleID, departmentID string) (benchmark.CutPoints, error) {
	return s.Benchmark.CutPointsFor(ctx, tenantID, cycleID, departmentID)
}
