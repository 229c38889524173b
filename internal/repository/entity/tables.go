package entity

import (
	"errors"

	"github.com/kailas-cloud/campusbot/internal/db/sqldb"
	domentity "github.com/kailas-cloud/campusbot/internal/domain/entity"
)

// Tables holds one Table per school entity.
type Tables struct {
	Offices       *Table[domentity.Office]
	Departments   *Table[domentity.Department]
	Scholarships  *Table[domentity.Scholarship]
	Courses       *Table[domentity.Course]
	Contacts      *Table[domentity.Contact]
	Organizations *Table[domentity.StudentOrg]
	Programs      *Table[domentity.Program]
	School        *Table[domentity.SchoolDetail]
	Officials     *Table[domentity.SchoolOfficial]
	Enrollment    *Table[domentity.Enrollment]
	Navigation    *Table[domentity.Navigation]
	Developers    *Table[domentity.DevInfo]
}

// NewTables maps every entity onto its table.
func NewTables(db *sqldb.DB) (*Tables, error) {
	var errs []error
	bind := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	t := &Tables{}
	var err error
	t.Offices, err = NewTable[domentity.Office](db, "offices")
	bind(err)
	t.Departments, err = NewTable[domentity.Department](db, "departments")
	bind(err)
	t.Scholarships, err = NewTable[domentity.Scholarship](db, "scholarships")
	bind(err)
	t.Courses, err = NewTable[domentity.Course](db, "courses")
	bind(err)
	t.Contacts, err = NewTable[domentity.Contact](db, "contacts")
	bind(err)
	t.Organizations, err = NewTable[domentity.StudentOrg](db, "student_orgs")
	bind(err)
	t.Programs, err = NewTable[domentity.Program](db, "programs")
	bind(err)
	t.School, err = NewTable[domentity.SchoolDetail](db, "school_details")
	bind(err)
	t.Officials, err = NewTable[domentity.SchoolOfficial](db, "school_officials")
	bind(err)
	t.Enrollment, err = NewTable[domentity.Enrollment](db, "enrollments")
	bind(err)
	t.Navigation, err = NewTable[domentity.Navigation](db, "navigations")
	bind(err)
	t.Developers, err = NewTable[domentity.DevInfo](db, "dev_info")
	bind(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}
