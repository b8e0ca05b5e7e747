package models

// ModerationStatus is the single-shot admin lifecycle applied to every
// listing type: created pending, approved or rejected once, never deleted.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)
