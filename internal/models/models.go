// Package models defines the persisted entities of the finhack API.
package models

// All lists every model in dependency order, for AutoMigrate and cleanup.
func All() []any {
	return []any{
		&User{},
		&Asset{},
		&Transaction{},
		&AuditLog{},
	}
}
