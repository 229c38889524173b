package search

import (
	"github.com/kailas-cloud/campusbot/internal/domain/entity"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	"github.com/kailas-cloud/campusbot/internal/format"
)

var offices = &spec[entity.Office]{
	domain:  route.Offices,
	plural:  "offices",
	sort:    "office_name",
	filters: []string{"office_name", "building", "location"},
	empty:   listAll,
	views: []view[entity.Office]{
		{"contact", has("contact_email", "contact_phone"), format.OfficeContact},
		{"hours", has("office_hours"), format.OfficeHours},
		{"head", has("head"), format.OfficeHead},
		{"services", has("services"), format.OfficeServices},
		{"location", has("location_query", "location", "building"), format.OfficeLocation},
		{"general", always, format.OfficeGeneral},
	},
	summary:   format.OfficeSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up office information right now. Please try again in a moment.",
}

var departments = &spec[entity.Department]{
	domain:  route.Departments,
	plural:  "departments",
	sort:    "department_name",
	filters: []string{"department_name", "department_code", "building"},
	empty:   listAll,
	views: []view[entity.Department]{
		{"contact", has("contact_email", "contact_phone"), format.DepartmentContact},
		{"head", has("head"), format.DepartmentHead},
		{"location", has("building", "location"), format.DepartmentLocation},
		{"general", always, format.DepartmentGeneral},
	},
	summary:   format.DepartmentSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up department information right now. Please try again in a moment.",
}

var scholarships = &spec[entity.Scholarship]{
	domain:  route.Scholarships,
	plural:  "scholarships",
	sort:    "scholarship_name",
	filters: []string{"scholarship_name", "category", "provider"},
	scalar:  []string{"scholarship_name"},
	empty:   listAll,
	views: []view[entity.Scholarship]{
		{"eligibility", has("eligibility"), format.ScholarshipEligibility},
		{"requirements", has("requirements"), format.ScholarshipRequirements},
		{"benefits", has("benefits"), format.ScholarshipBenefits},
		{"deadline", has("deadline"), format.ScholarshipDeadline},
		{"process", has("application_process"), format.ScholarshipProcess},
		{"general", always, format.ScholarshipGeneral},
	},
	summary:   format.ScholarshipSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up scholarship information right now. Please try again in a moment.",
}

var courses = &spec[entity.Course]{
	domain:  route.Courses,
	plural:  "courses",
	sort:    "course_code",
	filters: []string{"course_code", "course_title", "program", "year_level", "semester"},
	empty:   askDetail,
	askHint: "tell me the course code, title, or program you are asking about.",
	views: []view[entity.Course]{
		{"prerequisites", has("prerequisites"), format.CoursePrerequisites},
		{"units", has("units"), format.CourseUnits},
		{"schedule", has("semester", "year_level"), format.CourseSchedule},
		{"general", always, format.CourseGeneral},
	},
	summary:   format.CourseSummary,
	threshold: 5,
	apology:   "Sorry, I couldn't look up course information right now. Please try again in a moment.",
}

var contacts = &spec[entity.Contact]{
	domain:  route.Contacts,
	plural:  "contacts",
	sort:    "contact_name",
	filters: []string{"contact_name", "position", "office"},
	empty:   askDetail,
	askHint: "tell me the name, position, or office of the person you want to reach.",
	views: []view[entity.Contact]{
		{"email", has("email"), format.ContactEmail},
		{"phone", has("phone"), format.ContactPhone},
		{"location", has("location"), format.ContactLocation},
		{"general", always, format.ContactGeneral},
	},
	summary:   format.ContactSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up contact information right now. Please try again in a moment.",
}

var organizations = &spec[entity.StudentOrg]{
	domain:  route.Organizations,
	plural:  "organizations",
	sort:    "org_name",
	filters: []string{"org_name", "acronym", "category"},
	empty:   listAll,
	views: []view[entity.StudentOrg]{
		{"adviser", has("adviser"), format.OrgAdviser},
		{"president", has("president"), format.OrgPresident},
		{"membership", has("membership_requirements"), format.OrgMembership},
		{"contact", has("contact_email"), format.OrgContact},
		{"general", always, format.OrgGeneral},
	},
	summary:   format.OrgSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up student organization information right now. Please try again in a moment.",
}

var programs = &spec[entity.Program]{
	domain:  route.Programs,
	plural:  "programs",
	sort:    "program_name",
	filters: []string{"program_name", "program_code", "department"},
	empty:   listAll,
	views: []view[entity.Program]{
		{"tuition", has("tuition_fee"), format.ProgramTuition},
		{"requirements", has("admission_requirements"), format.ProgramRequirements},
		{"careers", has("career_opportunities"), format.ProgramCareers},
		{"duration", has("duration"), format.ProgramDuration},
		{"general", always, format.ProgramGeneral},
	},
	summary:   format.ProgramSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up program information right now. Please try again in a moment.",
}

var school = &spec[entity.SchoolDetail]{
	domain:  route.School,
	plural:  "school details",
	sort:    "id",
	filters: []string{"school_name"},
	scalar:  []string{"detail_type"},
	empty:   firstRecord,
	views: []view[entity.SchoolDetail]{
		{"small_details", detail("small_details"), format.SchoolSmallDetails},
		{"vision", detail("vision"), format.SchoolVision},
		{"mission", detail("mission"), format.SchoolMission},
		{"goals", detail("goals"), format.SchoolGoals},
		{"address", detail("address"), format.SchoolAddress},
		{"history", detail("history"), format.SchoolHistory},
		{"president", detail("president"), format.SchoolPresident},
		{"events", detail("events"), format.SchoolEvents},
		{"general", always, format.SchoolGeneral},
	},
	brief:     func(d entity.SchoolDetail) string { return d.Name },
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up school information right now. Please try again in a moment.",
}

var officials = &spec[entity.SchoolOfficial]{
	domain:  route.Officials,
	plural:  "school officials",
	sort:    "official_name",
	filters: []string{"official_name", "position", "office"},
	empty:   listAll,
	views: []view[entity.SchoolOfficial]{
		{"email", has("email"), format.OfficialEmail},
		{"office", has("office"), format.OfficialOffice},
		{"general", always, format.OfficialGeneral},
	},
	summary:   format.OfficialSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up school official information right now. Please try again in a moment.",
}

var enrollment = &spec[entity.Enrollment]{
	domain:  route.Enrollment,
	plural:  "enrollment procedures",
	sort:    "title",
	filters: []string{"student_type", "semester", "title"},
	scalar:  []string{"info_type"},
	empty:   listAll,
	views: []view[entity.Enrollment]{
		{"steps", infoType("steps"), format.EnrollmentSteps},
		{"requirements", infoType("requirements"), format.EnrollmentRequirements},
		{"schedule", infoType("schedule"), format.EnrollmentSchedule},
		{"general", always, format.EnrollmentGeneral},
	},
	summary:   format.EnrollmentSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up enrollment information right now. Please try again in a moment.",
}

var navigation = &spec[entity.Navigation]{
	domain:  route.Navigation,
	plural:  "places",
	sort:    "place_name",
	filters: []string{"place_name", "building", "room"},
	empty:   askDetail,
	askHint: "tell me which room, office, or building you are trying to find.",
	views: []view[entity.Navigation]{
		{"directions", has("directions"), format.NavigationDirections},
		{"floor", has("floor"), format.NavigationFloor},
		{"general", always, format.NavigationGeneral},
	},
	summary:   format.NavigationSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up directions right now. Please try again in a moment.",
}

var developers = &spec[entity.DevInfo]{
	domain:  route.Developers,
	plural:  "developers",
	sort:    "dev_name",
	filters: []string{"dev_name", "role"},
	empty:   listAll,
	views: []view[entity.DevInfo]{
		{"contact", has("email"), format.DevContact},
		{"general", always, format.DevGeneral},
	},
	summary:   format.DevSummary,
	threshold: defaultThreshold,
	apology:   "Sorry, I couldn't look up developer information right now. Please try again in a moment.",
}
