package auth

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

const (
	PermEmployeesRead     = "core.employees.read"
	PermEmployeesWrite    = "core.employees.write"
	PermWeightsRead       = "weights.read"
	PermWeightsWrite      = "weights.write"
	PermGoalsRead         = "goals.read"
	PermGoalsWrite        = "goals.write"
	PermGoalsApprove      = "goals.approve"
	PermCompetencyRead    = "competency.read"
	PermCompetencyWrite   = "competency.write"
	PermEvaluationRead    = "evaluation.read"
	PermEvaluationWrite   = "evaluation.write"
	PermEvaluationClose   = "evaluation.close"
	PermBonusRead         = "bonus.read"
	PermBonusWrite        = "bonus.write"
	PermBonusApprove      = "bonus.approve"
	PermPDIRead           = "pdi.read"
	PermPDIWrite          = "pdi.write"
	PermWorkflowDecide    = "workflow.decide"
	PermReportsRead       = "reports.read"
	PermAuditRead         = "audit.read"
	PermNotificationsRead = "notifications.read"
	PermSystemAdmin       = "admin.system"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermWeightsRead,
	PermWeightsWrite,
	PermGoalsRead,
	PermGoalsWrite,
	PermGoalsApprove,
	PermCompetencyRead,
	PermCompetencyWrite,
	PermEvaluationRead,
	PermEvaluationWrite,
	PermEvaluationClose,
	PermBonusRead,
	PermBonusWrite,
	PermBonusApprove,
	PermPDIRead,
	PermPDIWrite,
	PermWorkflowDecide,
	PermReportsRead,
	PermAuditRead,
	PermNotificationsRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermGoalsRead,
		PermGoalsWrite,
		PermCompetencyRead,
		PermEvaluationRead,
		PermPDIRead,
		PermPDIWrite,
		PermWorkflowDecide,
		PermReportsRead,
		PermNotificationsRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermGoalsRead,
		PermGoalsWrite,
		PermGoalsApprove,
		PermCompetencyRead,
		PermCompetencyWrite,
		PermEvaluationRead,
		PermEvaluationWrite,
		PermBonusRead,
		PermPDIRead,
		PermPDIWrite,
		PermWorkflowDecide,
		PermReportsRead,
		PermNotificationsRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermWeightsRead,
		PermWeightsWrite,
		PermGoalsRead,
		PermGoalsApprove,
		PermCompetencyRead,
		PermCompetencyWrite,
		PermEvaluationRead,
		PermEvaluationWrite,
		PermEvaluationClose,
		PermBonusRead,
		PermBonusWrite,
		PermBonusApprove,
		PermPDIRead,
		PermPDIWrite,
		PermWorkflowDecide,
		PermReportsRead,
		PermAuditRead,
		PermNotificationsRead,
	},
	RoleAdmin: DefaultPermissions,
}
