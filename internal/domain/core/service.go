package core

import (
	"context"

	"perfhub/internal/domain/workflow"
)

type Service struct {
	Store    *Store
	Workflow *workflow.Service
}

func NewService(store *Store, wf *workflow.Service) *Service {
	return &Service{Store: store, Workflow: wf}
}

func (s *Service) ListEmployees(ctx context.Context, tenantID, departmentID string) ([]Employee, error) {
	return s.Store.ListEmployees(ctx, tenantID, departmentID)
}

func (s *Service) GetEmployee(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	return s.Store.GetEmployee(ctx, tenantID, employeeID)
}

func (s *Service) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	return s.Store.EmployeeIDByUserID(ctx, tenantID, userID)
}

func (s *Service) UserIDByEmployeeID(ctx context.Context, tenantID, employeeID string) (string, error) {
	return s.Store.UserIDByEmployeeID(ctx, tenantID, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, e Employee) (string, error) {
	return s.Store.CreateEmployee(ctx, e)
}

func (s *Service) ListDepartments(ctx context.Context, tenantID string) ([]Department, error) {
	return s.Store.ListDepartments(ctx, tenantID)
}

func (s *Service) ListPositions(ctx context.Context, tenantID string) ([]Position, error) {
	return s.Store.ListPositions(ctx, tenantID)
}

func (s *Service) CreateJobDescription(ctx context.Context, jd JobDescription) (string, error) {
	return s.Store.CreateJobDescription(ctx, jd)
}

func (s *Service) GetJobDescription(ctx context.Context, tenantID, jdID string) (JobDescription, error) {
	return s.Store.GetJobDescription(ctx, tenantID, jdID)
}

func (s *Service) ListJobDescriptions(ctx context.Context, tenantID, positionID string) ([]JobDescription, error) {
	return s.Store.ListJobDescriptions(ctx, tenantID, positionID)
}

func (s *Service) SubmitJobDescription(ctx context.Context, tenantID, jdID string, actor workflow.Actor) (workflow.ApprovalRecord, error) {
	return s.Workflow.Submit(ctx, tenantID, workflow.KindJobDescription, jdID, actor)
}

func (s *Service) ApproveJobDescription(ctx context.Context, tenantID, jdID string, actor workflow.Actor, comments string) (workflow.ApprovalRecord, error) {
	return s.Workflow.Approve(ctx, tenantID, workflow.KindJobDescription, jdID, actor, comments)
}

func (s *Service) RejectJobDescription(ctx context.Context, tenantID, jdID string, actor workflow.Actor, comments string) (workflow.ApprovalRecord, error) {
	return s.Workflow.Reject(ctx, tenantID, workflow.KindJobDescription, jdID, actor, comments)
}

func (s *Service) DuplicateJobDescription(ctx context.Context, tenantID, jdID string) (string, error) {
	return s.Store.DuplicateJobDescription(ctx, tenantID, jdID)
}

func (s *Service) JobDescriptionHistory(ctx context.Context, jdID string) ([]workflow.ApprovalRecord, error) {
	return s.Workflow.History(ctx, workflow.KindJobDescription, jdID)
}
