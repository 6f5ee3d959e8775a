package domain

// Role is the caller's role as asserted by the authenticated session.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Actor identifies who is invoking an operation. It is always passed explicitly.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Action names an operation gated by the authorization boundary.
type Action string

const (
	ActionCreate           Action = "CREATE"
	ActionView             Action = "VIEW"
	ActionSubmitProof      Action = "SUBMIT_PAYMENT_PROOF"
	ActionValidatePayment  Action = "VALIDATE_PAYMENT"
	ActionRejectPayment    Action = "REJECT_PAYMENT"
	ActionStartProcessing  Action = "START_PROCESSING"
	ActionMarkShipped      Action = "MARK_SHIPPED"
	ActionConfirmDelivery  Action = "CONFIRM_DELIVERY"
	ActionComplete         Action = "COMPLETE"
	ActionCancel           Action = "CANCEL"
	ActionManageCatalog    Action = "MANAGE_CATALOG"
	ActionManageCommission Action = "MANAGE_COMMISSION"
	ActionListAll          Action = "LIST_ALL"
)
