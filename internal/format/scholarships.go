package format

import (
	"fmt"

	"github.com/kailas-cloud/campusbot/internal/domain/entity"
)

// ScholarshipGeneral renders every known field of a scholarship.
func ScholarshipGeneral(s entity.Scholarship) string {
	return block(s.Name,
		kv("Category", s.Category),
		kv("Provider", s.Provider),
		kv("Description", s.Description),
		kv("Eligibility", s.Eligibility),
		kv("Requirements", s.Requirements),
		kv("Benefits", s.Benefits),
		kv("Deadline", s.Deadline),
		kv("How to apply", s.ApplicationProcess),
	)
}

// ScholarshipEligibility renders who may apply.
func ScholarshipEligibility(s entity.Scholarship) string {
	return listing(fmt.Sprintf("To be eligible for the %s:", s.Name), s.Eligibility, false)
}

// ScholarshipRequirements renders the documents an applicant submits.
func ScholarshipRequirements(s entity.Scholarship) string {
	return listing(fmt.Sprintf("Requirements for the %s:", s.Name), s.Requirements, true)
}

// ScholarshipBenefits renders what a grantee receives.
func ScholarshipBenefits(s entity.Scholarship) string {
	return listing(fmt.Sprintf("Benefits of the %s:", s.Name), s.Benefits, false)
}

// ScholarshipDeadline renders when applications close.
func ScholarshipDeadline(s entity.Scholarship) string {
	if s.Deadline == "" {
		return ""
	}
	return fmt.Sprintf("The application deadline for the %s is %s.", s.Name, s.Deadline)
}

// ScholarshipProcess renders the application steps.
func ScholarshipProcess(s entity.Scholarship) string {
	return listing(fmt.Sprintf("How to apply for the %s:", s.Name), s.ApplicationProcess, true)
}

// ScholarshipSummary renders many scholarships.
func ScholarshipSummary(items []entity.Scholarship, threshold int) string {
	return Summary("scholarships", items, threshold,
		func(s entity.Scholarship) string {
			return block(s.Name,
				kv("Category", s.Category),
				kv("Provider", s.Provider),
				kv("Description", Truncate(s.Description, LongField)),
				kv("Deadline", s.Deadline),
			)
		},
		func(s entity.Scholarship) string {
			return dash(s.Name, joinNonEmpty(", ", s.Category, Truncate(s.Description, MediumField)))
		},
	)
}

// OrgGeneral renders every known field of a student organization.
func OrgGeneral(o entity.StudentOrg) string {
	title := o.Name
	if o.Acronym != "" {
		title = fmt.Sprintf("%s (%s)", o.Name, o.Acronym)
	}
	return block(title,
		kv("Category", o.Category),
		kv("Description", o.Description),
		kv("Adviser", o.Adviser),
		kv("President", o.President),
		kv("Email", o.ContactEmail),
		kv("Membership requirements", o.MembershipRequirements),
	)
}

// OrgAdviser renders an organization's adviser.
func OrgAdviser(o entity.StudentOrg) string {
	if o.Adviser == "" {
		return ""
	}
	return fmt.Sprintf("The adviser of %s is %s.", o.Name, o.Adviser)
}

// OrgPresident renders an organization's current president.
func OrgPresident(o entity.StudentOrg) string {
	if o.President == "" {
		return ""
	}
	return fmt.Sprintf("The president of %s is %s.", o.Name, o.President)
}

// OrgMembership renders how to join.
func OrgMembership(o entity.StudentOrg) string {
	return listing(fmt.Sprintf("To join %s:", o.Name), o.MembershipRequirements, true)
}

// OrgContact renders how to reach an organization.
func OrgContact(o entity.StudentOrg) string {
	if o.ContactEmail == "" {
		return ""
	}
	return fmt.Sprintf("You can reach %s at %s.", o.Name, o.ContactEmail)
}

// OrgSummary renders many organizations.
func OrgSummary(items []entity.StudentOrg, threshold int) string {
	return Summary("organizations", items, threshold,
		func(o entity.StudentOrg) string {
			return block(o.Name,
				kv("Category", o.Category),
				kv("Description", Truncate(o.Description, LongField)),
				kv("Adviser", o.Adviser),
			)
		},
		func(o entity.StudentOrg) string {
			return dash(o.Name, joinNonEmpty(", ", o.Acronym, o.Category))
		},
	)
}
