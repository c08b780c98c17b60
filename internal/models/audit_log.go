package models

// Audited actions.
const (
	AuditRegister                  = "REGISTER"
	AuditLogin                     = "LOGIN"
	AuditUpdateProfile             = "UPDATE_PROFILE"
	AuditChangePassword            = "CHANGE_PASSWORD"
	AuditDeleteAccount             = "DELETE_ACCOUNT"
	AuditCreateAsset               = "CREATE_ASSET"
	AuditUpdateAsset               = "UPDATE_ASSET"
	AuditDeleteAsset               = "DELETE_ASSET"
	AuditCreateTransaction         = "CREATE_TRANSACTION"
	AuditUpdateTransactionCategory = "UPDATE_TRANSACTION_CATEGORY"
	AuditDeleteTransaction         = "DELETE_TRANSACTION"
)

// Resource types referenced by audit entries.
const (
	ResourceUser        = "user"
	ResourceAsset       = "asset"
	ResourceTransaction = "transaction"
)

// AuditLog is an append-only record of a write made by a user. Changes holds
// the JSON-encoded request fields that shaped the write, if any.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"size:64;not null;index" json:"action"`
	ResourceType string `gorm:"size:32;not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `gorm:"size:45" json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
