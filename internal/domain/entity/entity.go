// Package entity holds the school records the chatbot answers from.
// Text fields are optional; an empty string means the value is unknown.
package entity

// Office is an administrative office or campus facility.
type Office struct {
	ID           int64  `json:"id"`
	Name         string `json:"office_name"`
	Description  string `json:"description,omitempty"`
	Building     string `json:"building,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Location     string `json:"location,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	OfficeHours  string `json:"office_hours,omitempty"`
	Head         string `json:"head,omitempty"`
	Services     string `json:"services,omitempty"`
}

// Department is an academic department.
type Department struct {
	ID           int64  `json:"id"`
	Name         string `json:"department_name"`
	Code         string `json:"department_code,omitempty"`
	Description  string `json:"description,omitempty"`
	Building     string `json:"building,omitempty"`
	Location     string `json:"location,omitempty"`
	Head         string `json:"head,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// Scholarship is a grant or financial assistance program.
type Scholarship struct {
	ID                 int64  `json:"id"`
	Name               string `json:"scholarship_name"`
	Category           string `json:"category,omitempty"`
	Provider           string `json:"provider,omitempty"`
	Description        string `json:"description,omitempty"`
	Eligibility        string `json:"eligibility,omitempty"`
	Requirements       string `json:"requirements,omitempty"`
	Benefits           string `json:"benefits,omitempty"`
	Deadline           string `json:"deadline,omitempty"`
	ApplicationProcess string `json:"application_process,omitempty"`
}

// Course is a subject offered within a program.
type Course struct {
	ID            int64  `json:"id"`
	Code          string `json:"course_code"`
	Title         string `json:"course_title"`
	Description   string `json:"description,omitempty"`
	Units         *int   `json:"units,omitempty"`
	Program       string `json:"program,omitempty"`
	YearLevel     string `json:"year_level,omitempty"`
	Semester      string `json:"semester,omitempty"`
	Prerequisites string `json:"prerequisites,omitempty"`
}

// Contact is a person students can reach.
type Contact struct {
	ID       int64  `json:"id"`
	Name     string `json:"contact_name"`
	Position string `json:"position,omitempty"`
	Office   string `json:"office,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// StudentOrg is a recognized student organization.
type StudentOrg struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"org_name"`
	Acronym                string `json:"acronym,omitempty"`
	Category               string `json:"category,omitempty"`
	Description            string `json:"description,omitempty"`
	Adviser                string `json:"adviser,omitempty"`
	President              string `json:"president,omitempty"`
	ContactEmail           string `json:"contact_email,omitempty"`
	MembershipRequirements string `json:"membership_requirements,omitempty"`
}

// Program is a degree program.
type Program struct {
	ID                    int64    `json:"id"`
	Name                  string   `json:"program_name"`
	Code                  string   `json:"program_code,omitempty"`
	Department            string   `json:"department,omitempty"`
	Description           string   `json:"description,omitempty"`
	Duration              string   `json:"duration,omitempty"`
	TuitionFee            *float64 `json:"tuition_fee,omitempty"`
	AdmissionRequirements string   `json:"admission_requirements,omitempty"`
	CareerOpportunities   string   `json:"career_opportunities,omitempty"`
}

// SchoolDetail holds institution-wide facts.
type SchoolDetail struct {
	ID           int64  `json:"id"`
	Name         string `json:"school_name"`
	SmallDetails string `json:"small_details,omitempty"`
	Vision       string `json:"vision,omitempty"`
	Mission      string `json:"mission,omitempty"`
	Goals        string `json:"goals,omitempty"`
	Address      string `json:"address,omitempty"`
	History      string `json:"history,omitempty"`
	President    string `json:"president,omitempty"`
	Events       string `json:"events,omitempty"`
}

// SchoolOfficial is an officer of the administration.
type SchoolOfficial struct {
	ID       int64  `json:"id"`
	Name     string `json:"official_name"`
	Position string `json:"position,omitempty"`
	Office   string `json:"office,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Enrollment describes one enrollment procedure.
// Steps and Requirements are newline-separated lists.
type Enrollment struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	StudentType  string `json:"student_type,omitempty"`
	Semester     string `json:"semester,omitempty"`
	Steps        string `json:"steps,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Schedule     string `json:"schedule,omitempty"`
}

// Navigation gives directions to a place on campus.
// Directions is a newline-separated list.
type Navigation struct {
	ID         int64  `json:"id"`
	PlaceName  string `json:"place_name"`
	Building   string `json:"building,omitempty"`
	Floor      string `json:"floor,omitempty"`
	Room       string `json:"room,omitempty"`
	Landmark   string `json:"landmark,omitempty"`
	Directions string `json:"directions,omitempty"`
}

// DevInfo credits a member of the team that built the chatbot.
type DevInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"dev_name"`
	Role        string `json:"role,omitempty"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
}
