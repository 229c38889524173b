package format

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/campusbot/internal/domain/entity"
)

func programTitle(p entity.Program) string {
	if p.Code != "" && p.Code != p.Name {
		return fmt.Sprintf("%s (%s)", p.Name, p.Code)
	}
	return p.Name
}

func tuition(p entity.Program) string {
	if p.TuitionFee == nil {
		return ""
	}
	return Peso(*p.TuitionFee) + " per semester"
}

// ProgramGeneral renders every known field of a program.
func ProgramGeneral(p entity.Program) string {
	return block(programTitle(p),
		kv("Department", p.Department),
		kv("Description", p.Description),
		kv("Duration", p.Duration),
		kv("Tuition fee", tuition(p)),
		kv("Admission requirements", p.AdmissionRequirements),
		kv("Career opportunities", p.CareerOpportunities),
	)
}

// ProgramTuition renders what a program costs.
func ProgramTuition(p entity.Program) string {
	if p.TuitionFee == nil {
		return ""
	}
	return fmt.Sprintf("The tuition fee for %s is %s.", programTitle(p), tuition(p))
}

// ProgramRequirements renders admission requirements.
func ProgramRequirements(p entity.Program) string {
	return listing(fmt.Sprintf("Admission requirements for %s:", programTitle(p)), p.AdmissionRequirements, true)
}

// ProgramCareers renders career paths.
func ProgramCareers(p entity.Program) string {
	return listing(fmt.Sprintf("Career opportunities for %s graduates:", programTitle(p)), p.CareerOpportunities, false)
}

// ProgramDuration renders how long a program takes.
func ProgramDuration(p entity.Program) string {
	if p.Duration == "" {
		return ""
	}
	return fmt.Sprintf("%s takes %s to complete.", programTitle(p), p.Duration)
}

// ProgramSummary renders many programs.
func ProgramSummary(items []entity.Program, threshold int) string {
	return Summary("programs", items, threshold,
		func(p entity.Program) string {
			return block(programTitle(p),
				kv("Department", p.Department),
				kv("Duration", p.Duration),
				kv("Tuition fee", tuition(p)),
			)
		},
		func(p entity.Program) string {
			return dash(programTitle(p), Truncate(p.Department, ShortField))
		},
	)
}

func courseTitle(c entity.Course) string {
	return joinNonEmpty(" - ", c.Code, c.Title)
}

func units(c entity.Course) string {
	if c.Units == nil {
		return ""
	}
	if *c.Units == 1 {
		return "1 unit"
	}
	return strconv.Itoa(*c.Units) + " units"
}

func courseTerm(c entity.Course) string {
	return joinNonEmpty(", ", c.YearLevel, c.Semester)
}

// CourseGeneral renders every known field of a course.
func CourseGeneral(c entity.Course) string {
	return block(courseTitle(c),
		kv("Description", c.Description),
		kv("Units", units(c)),
		kv("Program", c.Program),
		kv("Offered", courseTerm(c)),
		kv("Prerequisites", c.Prerequisites),
	)
}

// CoursePrerequisites renders what must be taken first.
func CoursePrerequisites(c entity.Course) string {
	if c.Prerequisites == "" {
		return fmt.Sprintf("%s has no prerequisites on record.", courseTitle(c))
	}
	return fmt.Sprintf("The prerequisites for %s are: %s.", courseTitle(c), c.Prerequisites)
}

// CourseUnits renders a course's credit load.
func CourseUnits(c entity.Course) string {
	if c.Units == nil {
		return ""
	}
	return fmt.Sprintf("%s is worth %s.", courseTitle(c), units(c))
}

// CourseSchedule renders when a course is offered.
func CourseSchedule(c entity.Course) string {
	term := courseTerm(c)
	if term == "" {
		return ""
	}
	return fmt.Sprintf("%s is offered in %s.", courseTitle(c), term)
}

// CourseSummary renders many courses.
func CourseSummary(items []entity.Course, threshold int) string {
	return Summary("courses", items, threshold,
		func(c entity.Course) string {
			return block(courseTitle(c),
				kv("Units", units(c)),
				kv("Offered", courseTerm(c)),
			)
		},
		func(c entity.Course) string {
			return dash(courseTitle(c), units(c))
		},
	)
}
