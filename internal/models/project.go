package models

// Project is a row of the projects table.
type Project struct {
	ProjectID   string `db:"project_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Status      string `db:"status"`
	AuditFields
}
