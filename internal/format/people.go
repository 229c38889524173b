package format

import (
	"fmt"

	"github.com/kailas-cloud/campusbot/internal/domain/entity"
)

func role(position, office string) string {
	if position != "" && office != "" {
		return position + ", " + office
	}
	return joinNonEmpty("", position, office)
}

// ContactGeneral renders every known field of a contact.
func ContactGeneral(c entity.Contact) string {
	return block(c.Name,
		kv("Position", role(c.Position, c.Office)),
		kv("Email", c.Email),
		kv("Phone", c.Phone),
		kv("Location", c.Location),
	)
}

// ContactEmail renders a contact's email.
func ContactEmail(c entity.Contact) string {
	if c.Email == "" {
		return ""
	}
	return fmt.Sprintf("You can email %s at %s.", c.Name, c.Email)
}

// ContactPhone renders a contact's phone number.
func ContactPhone(c entity.Contact) string {
	if c.Phone == "" {
		return ""
	}
	return fmt.Sprintf("You can call %s at %s.", c.Name, c.Phone)
}

// ContactLocation renders where to find a contact.
func ContactLocation(c entity.Contact) string {
	if c.Location == "" {
		return ""
	}
	return fmt.Sprintf("%s can be found at %s.", c.Name, c.Location)
}

// ContactSummary renders many contacts.
func ContactSummary(items []entity.Contact, threshold int) string {
	return Summary("contacts", items, threshold,
		func(c entity.Contact) string {
			return block(c.Name,
				kv("Position", role(c.Position, c.Office)),
				kv("Email", c.Email),
				kv("Phone", c.Phone),
			)
		},
		func(c entity.Contact) string {
			return dash(c.Name, Truncate(role(c.Position, c.Office), ShortField))
		},
	)
}

// OfficialGeneral renders every known field of a school official.
func OfficialGeneral(o entity.SchoolOfficial) string {
	return block(o.Name,
		kv("Position", o.Position),
		kv("Office", o.Office),
		kv("Email", o.Email),
	)
}

// OfficialEmail renders an official's email.
func OfficialEmail(o entity.SchoolOfficial) string {
	if o.Email == "" {
		return ""
	}
	return fmt.Sprintf("You can email %s at %s.", o.Name, o.Email)
}

// OfficialOffice renders which office an official holds.
func OfficialOffice(o entity.SchoolOfficial) string {
	if o.Office == "" {
		return ""
	}
	return fmt.Sprintf("%s holds office at the %s.", o.Name, o.Office)
}

// OfficialSummary renders many officials.
func OfficialSummary(items []entity.SchoolOfficial, threshold int) string {
	return Summary("school officials", items, threshold,
		func(o entity.SchoolOfficial) string {
			return block(o.Name, kv("Position", o.Position), kv("Office", o.Office))
		},
		func(o entity.SchoolOfficial) string {
			return dash(o.Name, Truncate(o.Position, ShortField))
		},
	)
}

// DevGeneral renders a development team member.
func DevGeneral(d entity.DevInfo) string {
	return block(d.Name,
		kv("Role", d.Role),
		kv("About", d.Description),
		kv("Email", d.Email),
	)
}

// DevContact renders how to reach a developer.
func DevContact(d entity.DevInfo) string {
	if d.Email == "" {
		return ""
	}
	return fmt.Sprintf("You can reach %s at %s.", d.Name, d.Email)
}

// DevSummary renders the development team.
func DevSummary(items []entity.DevInfo, threshold int) string {
	return Summary("developers", items, threshold,
		func(d entity.DevInfo) string {
			return block(d.Name, kv("Role", d.Role), kv("About", Truncate(d.Description, MediumField)))
		},
		func(d entity.DevInfo) string {
			return dash(d.Name, d.Role)
		},
	)
}
