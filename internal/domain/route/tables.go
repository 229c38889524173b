package route

import "github.com/kailas-cloud/campusbot/internal/domain/params"

// keyword order matters: "school official" must land on officials, not school.
var intentKeywords = []struct {
	domain Domain
	words  []string
}{
	{Scholarships, []string{"scholarship", "grant"}},
	{Enrollment, []string{"enrol"}},
	{Navigation, []string{"direction", "navigat"}},
	{Officials, []string{"official", "president", "dean"}},
	{Developers, []string{"developer", "creator", "dev info"}},
	{Departments, []string{"department"}},
	{Offices, []string{"office", "facilit"}},
	{Courses, []string{"course", "subject"}},
	{Contacts, []string{"contact"}},
	{Organizations, []string{"organization", "org", "club"}},
	{Programs, []string{"program", "tuition", "degree"}},
	{School, []string{"school", "vision", "mission", "history"}},
}

var (
	officeRemap = params.Remap{
		{From: "office", To: "office_name"},
		{From: "office-name", To: "office_name"},
		{From: "office_location", To: "location"},
		{From: "office-location", To: "location"},
		{From: "email", To: "contact_email"},
		{From: "phone", To: "contact_phone"},
		{From: "hours", To: "office_hours"},
	}
	departmentRemap = params.Remap{
		{From: "department", To: "department_name"},
		{From: "department-name", To: "department_name"},
		{From: "department-code", To: "department_code", Transform: params.Upper},
		{From: "email", To: "contact_email"},
		{From: "phone", To: "contact_phone"},
	}
	scholarshipRemap = params.Remap{
		{From: "scholarship", To: "scholarship_name", Transform: params.First},
		{From: "scholarship-name", To: "scholarship_name", Transform: params.First},
		{From: "scholarship-category", To: "category"},
		{From: "scholarship_category", To: "category"},
		{From: "documents", To: "requirements"},
		{From: "process", To: "application_process"},
	}
	courseRemap = params.Remap{
		{From: "course", To: "course_title"},
		{From: "course-name", To: "course_title"},
		{From: "course_name", To: "course_title"},
		{From: "course-code", To: "course_code", Transform: params.Upper},
		{From: "year", To: "year_level"},
		{From: "program_name", To: "program"},
	}
	contactRemap = params.Remap{
		{From: "person", To: "contact_name"},
		{From: "name", To: "contact_name"},
		{From: "contact", To: "contact_name"},
		{From: "contact_email", To: "email"},
		{From: "contact_phone", To: "phone"},
	}
	orgRemap = params.Remap{
		{From: "organization", To: "org_name"},
		{From: "org", To: "org_name"},
		{From: "organization_name", To: "org_name"},
		{From: "org-category", To: "category"},
		{From: "org_category", To: "category"},
		{From: "requirements", To: "membership_requirements"},
	}
	programRemap = params.Remap{
		{From: "program", To: "program_name"},
		{From: "program-name", To: "program_name"},
		{From: "program-code", To: "program_code", Transform: params.Upper},
		{From: "tuition", To: "tuition_fee"},
		{From: "requirements", To: "admission_requirements"},
		{From: "careers", To: "career_opportunities"},
	}
	schoolRemap = params.Remap{
		{From: "school-detail", To: "detail_type", Transform: params.First},
		{From: "detail-type", To: "detail_type", Transform: params.First},
		{From: "detail_type", To: "detail_type", Transform: params.First},
		{From: "detail", To: "detail_type", Transform: params.First},
		{From: "school", To: "school_name"},
	}
	officialRemap = params.Remap{
		{From: "official", To: "official_name"},
		{From: "person", To: "official_name"},
		{From: "official-position", To: "position"},
	}
	enrollmentRemap = params.Remap{
		{From: "student-type", To: "student_type", Transform: params.Lower},
		{From: "student_type", To: "student_type", Transform: params.Lower},
		{From: "enrollment-info", To: "info_type", Transform: params.First},
	}
	navigationRemap = params.Remap{
		{From: "place", To: "place_name"},
		{From: "destination", To: "place_name"},
		{From: "location", To: "place_name"},
	}
	devRemap = params.Remap{
		{From: "developer", To: "dev_name"},
		{From: "dev-role", To: "role"},
	}
)

// defaultRemaps is used for domains resolved through intent keywords.
var defaultRemaps = map[Domain]params.Remap{
	Offices:       officeRemap,
	Departments:   departmentRemap,
	Scholarships:  scholarshipRemap,
	Courses:       courseRemap,
	Contacts:      contactRemap,
	Organizations: orgRemap,
	Programs:      programRemap,
	School:        schoolRemap,
	Officials:     officialRemap,
	Enrollment:    enrollmentRemap,
	Navigation:    navigationRemap,
	Developers:    devRemap,
}

// Remaps returns the default NLU -> domain parameter table of d.
func Remaps(d Domain) params.Remap { return defaultRemaps[d] }

func hint(name string) params.Params {
	return params.Params{name: params.String(name)}
}

var actions = []Action{
	{Name: "get_office_info", Domain: Offices, Remap: officeRemap},
	{Name: "get_office_location", Domain: Offices, Remap: officeRemap, Implied: hint("location_query")},
	{Name: "get_office_contact", Domain: Offices, Remap: officeRemap, Implied: hint("contact_email")},
	{Name: "get_office_hours", Domain: Offices, Remap: officeRemap, Implied: hint("office_hours")},
	{Name: "get_all_offices", Domain: Offices, Remap: officeRemap},

	{Name: "get_department_info", Domain: Departments, Remap: departmentRemap},
	{Name: "get_all_departments", Domain: Departments, Remap: departmentRemap},

	{Name: "get_scholarship_info", Domain: Scholarships, Remap: scholarshipRemap},
	{Name: "get_scholarship_eligibility", Domain: Scholarships, Remap: scholarshipRemap, Implied: hint("eligibility")},
	{Name: "get_scholarship_requirements", Domain: Scholarships, Remap: scholarshipRemap, Implied: hint("requirements")},
	{Name: "list_scholarships_by_category", Domain: Scholarships, Remap: scholarshipRemap},
	{Name: "get_all_scholarships", Domain: Scholarships, Remap: scholarshipRemap},

	{Name: "get_course_info", Domain: Courses, Remap: courseRemap},
	{Name: "get_course_list", Domain: Courses, Remap: courseRemap},

	{Name: "get_contact_info", Domain: Contacts, Remap: contactRemap},

	{Name: "get_org_info", Domain: Organizations, Remap: orgRemap},
	{Name: "list_orgs_by_category", Domain: Organizations, Remap: orgRemap},
	{Name: "get_all_orgs", Domain: Organizations, Remap: orgRemap},

	{Name: "get_program_info", Domain: Programs, Remap: programRemap},
	{Name: "get_program_tuition", Domain: Programs, Remap: programRemap, Implied: hint("tuition_fee")},
	{Name: "get_all_programs", Domain: Programs, Remap: programRemap},

	{Name: "get_school_info", Domain: School, Remap: schoolRemap},

	{Name: "get_official_info", Domain: Officials, Remap: officialRemap},
	{Name: "get_all_officials", Domain: Officials, Remap: officialRemap},

	{Name: "get_enrollment_info", Domain: Enrollment, Remap: enrollmentRemap},
	{Name: "get_enrollment_requirements", Domain: Enrollment, Remap: enrollmentRemap, Implied: hint("requirements")},

	{Name: "get_directions", Domain: Navigation, Remap: navigationRemap, Implied: hint("directions")},

	{Name: "get_dev_info", Domain: Developers, Remap: devRemap},
}
