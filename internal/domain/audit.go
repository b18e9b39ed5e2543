package domain

import "time"

// Audit holds who created and last modified an entity, and when.
// The persistence layer fills it in before every write; request handlers only
// read it.
type Audit struct {
	CreatedBy      string    `json:"createdBy"`
	Created        time.Time `json:"created"`
	LastModifiedBy string    `json:"lastModifiedBy"`
	LastModified   time.Time `json:"lastModified"`
}

// Auditable is implemented by entities that carry an Audit record.
type Auditable interface {
	AuditRecord() *Audit
}
