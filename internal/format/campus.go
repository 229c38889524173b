package format

import (
	"fmt"

	"github.com/kailas-cloud/campusbot/internal/domain/entity"
)

// SchoolGeneral renders the institution overview.
func SchoolGeneral(s entity.SchoolDetail) string {
	return block(s.Name,
		kv("About", s.SmallDetails),
		kv("Address", s.Address),
		kv("President", s.President),
		kv("Vision", Truncate(s.Vision, LongField)),
		kv("Mission", Truncate(s.Mission, LongField)),
	)
}

func schoolField(name, label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s of %s:\n%s", label, name, value)
}

// SchoolSmallDetails renders the short fact sheet.
func SchoolSmallDetails(s entity.SchoolDetail) string {
	return schoolField(s.Name, "Quick facts", s.SmallDetails)
}

// SchoolVision renders the vision statement.
func SchoolVision(s entity.SchoolDetail) string { return schoolField(s.Name, "Vision", s.Vision) }

// SchoolMission renders the mission statement.
func SchoolMission(s entity.SchoolDetail) string { return schoolField(s.Name, "Mission", s.Mission) }

// SchoolGoals renders institutional goals as a numbered list.
func SchoolGoals(s entity.SchoolDetail) string {
	return listing(fmt.Sprintf("Goals of %s:", s.Name), s.Goals, true)
}

// SchoolAddress renders where the school is.
func SchoolAddress(s entity.SchoolDetail) string {
	if s.Address == "" {
		return ""
	}
	return fmt.Sprintf("%s is located at %s.", s.Name, s.Address)
}

// SchoolHistory renders the school's history.
func SchoolHistory(s entity.SchoolDetail) string { return schoolField(s.Name, "History", s.History) }

// SchoolPresident renders the current president.
func SchoolPresident(s entity.SchoolDetail) string {
	if s.President == "" {
		return ""
	}
	return fmt.Sprintf("The president of %s is %s.", s.Name, s.President)
}

// SchoolEvents renders upcoming events.
func SchoolEvents(s entity.SchoolDetail) string {
	return listing(fmt.Sprintf("Events at %s:", s.Name), s.Events, false)
}

// EnrollmentGeneral renders an enrollment procedure overview.
func EnrollmentGeneral(e entity.Enrollment) string {
	out := block(e.Title,
		kv("For", e.StudentType),
		kv("Semester", e.Semester),
		kv("Schedule", e.Schedule),
	)
	if steps := Items(e.Steps); len(steps) > 0 {
		out += "\nSteps:\n" + Numbered(steps)
	}
	if reqs := Items(e.Requirements); len(reqs) > 0 {
		out += "\nRequirements:\n" + Bulleted(reqs)
	}
	return out
}

// EnrollmentSteps renders the procedure as numbered steps.
func EnrollmentSteps(e entity.Enrollment) string {
	return listing(fmt.Sprintf("Steps for %s:", e.Title), e.Steps, true)
}

// EnrollmentRequirements renders what to bring.
func EnrollmentRequirements(e entity.Enrollment) string {
	return listing(fmt.Sprintf("Requirements for %s:", e.Title), e.Requirements, false)
}

// EnrollmentSchedule renders when enrollment runs.
func EnrollmentSchedule(e entity.Enrollment) string {
	if e.Schedule == "" {
		return ""
	}
	return fmt.Sprintf("%s runs %s.", e.Title, e.Schedule)
}

// EnrollmentSummary renders many procedures.
func EnrollmentSummary(items []entity.Enrollment, threshold int) string {
	return Summary("enrollment procedures", items, threshold,
		func(e entity.Enrollment) string {
			return block(e.Title,
				kv("For", e.StudentType),
				kv("Schedule", e.Schedule),
				kv("Steps", Truncate(joinNonEmpty("; ", Items(e.Steps)...), LongField)),
			)
		},
		func(e entity.Enrollment) string {
			return dash(e.Title, joinNonEmpty(", ", e.StudentType, Truncate(e.Schedule, ShortField)))
		},
	)
}

func navPlace(n entity.Navigation) string {
	return joinNonEmpty(", ", n.Room, n.Floor, n.Building)
}

// NavigationGeneral renders where a place is.
func NavigationGeneral(n entity.Navigation) string {
	return block(n.PlaceName,
		kv("Location", navPlace(n)),
		kv("Landmark", n.Landmark),
	)
}

// NavigationDirections renders step-by-step directions.
func NavigationDirections(n entity.Navigation) string {
	return listing(fmt.Sprintf("How to get to %s:", n.PlaceName), n.Directions, true)
}

// NavigationFloor renders which floor a place is on.
func NavigationFloor(n entity.Navigation) string {
	if n.Floor == "" {
		return ""
	}
	out := fmt.Sprintf("%s is on the %s", n.PlaceName, n.Floor)
	if n.Building != "" {
		out += " of " + n.Building
	}
	return out + "."
}

// NavigationSummary renders many places.
func NavigationSummary(items []entity.Navigation, threshold int) string {
	return Summary("places", items, threshold,
		func(n entity.Navigation) string {
			return block(n.PlaceName, kv("Location", navPlace(n)), kv("Landmark", n.Landmark))
		},
		func(n entity.Navigation) string {
			return dash(n.PlaceName, Truncate(navPlace(n), ShortField))
		},
	)
}
