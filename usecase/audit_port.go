package usecase

// AuditRecorder abstracts the audit sink so use cases stay storage-agnostic.
// Record is fire-and-forget: implementations log failures instead of
// returning them, and callers never treat auditing as fallible.
type AuditRecorder interface {
	Record(message string)
}

// NopAudit discards audit records. Used as the default when no sink is wired.
type NopAudit struct{}

func (NopAudit) Record(string) {}
