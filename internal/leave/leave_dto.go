package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	LeaveType  string `json:"type" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	Days       int    `json:"days" binding:"gt=0"`
	Reason     string `json:"reason"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employeeId"`
	LeaveType        string  `json:"type"`
	StartDate        string  `json:"startDate"`
	Days             int     `json:"days"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	AppliedAt        string  `json:"appliedAt"`
	DecidedBy        *string `json:"decidedBy,omitempty"`
	DecidedAt        *string `json:"decidedAt,omitempty"`
	RemainingBalance *int    `json:"remainingBalance,omitempty"`
}
