package postgres

import "fmt"

// TableNames holds environment-prefixed table names (dev_, test_, prod_).
type TableNames struct {
	Folders         string
	Files           string
	Courses         string
	Enrollments     string
	TeacherProfiles string
}

// NewTableNames creates table names with the given prefix. The prefix is
// interpolated before the SQL reaches the database, so each environment
// gets its own statements.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:         fmt.Sprintf("%sdocument_folders", prefix),
		Files:           fmt.Sprintf("%sdocument_files", prefix),
		Courses:         fmt.Sprintf("%scourses", prefix),
		Enrollments:     fmt.Sprintf("%senrollments", prefix),
		TeacherProfiles: fmt.Sprintf("%steacher_profiles", prefix),
	}
}
