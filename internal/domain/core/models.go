package core

import "time"

type Employee struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	UserID       string    `json:"userId,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"departmentId,omitempty"`
	PositionID   string    `json:"positionId,omitempty"`
	ManagerID    string    `json:"managerId,omitempty"`
	BaseSalary   float64   `json:"baseSalary"`
	HiredAt      time.Time `json:"hiredAt"`
	Status       string    `json:"status"`
}

type Department struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
}

type Position struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenantId"`
	DepartmentID string `json:"departmentId,omitempty"`
	Title        string `json:"title"`
}

// JobDescription is a workflow subject: occupant, manager and HR validate it
// in sequence before it becomes the position's description of record.
type JobDescription struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	PositionID       string    `json:"positionId"`
	Summary          string    `json:"summary"`
	Responsibilities string    `json:"responsibilities"`
	Requirements     string    `json:"requirements"`
	Status           string    `json:"status"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
