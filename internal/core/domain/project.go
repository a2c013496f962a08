package domain

// ProjectStatus is the lifecycle state of a cost or revenue center.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

// IsValid reports whether s is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project groups non-dues ledger entries under a named initiative.
type Project struct {
	ProjectID   string        `json:"projectID"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	AuditFields
}

// IsSelectable reports whether new entries may be recorded against the project.
// Cancelled projects are hidden from selection.
func (p Project) IsSelectable() bool {
	return p.Status != ProjectCancelled
}
