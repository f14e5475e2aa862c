package domain

// EnforceRequest asks whether Role may perform Action on Resource.
type EnforceRequest struct {
	Subject  string `json:"subject,omitempty"`
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleFinance  = "FINANCE"
	RoleMD       = "MD"
	RoleEmployee = "EMPLOYEE"
)
