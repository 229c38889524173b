package format

import (
	"fmt"

	"github.com/kailas-cloud/campusbot/internal/domain/entity"
)

func officePlace(o entity.Office) string {
	return joinNonEmpty(", ", o.Location, o.Building, o.Floor)
}

// OfficeGeneral renders every known field of an office.
func OfficeGeneral(o entity.Office) string {
	return block(o.Name,
		kv("Description", o.Description),
		kv("Location", officePlace(o)),
		kv("Office hours", o.OfficeHours),
		kv("Head", o.Head),
		kv("Email", o.ContactEmail),
		kv("Phone", o.ContactPhone),
		kv("Services", o.Services),
	)
}

// OfficeContact renders how to reach an office.
func OfficeContact(o entity.Office) string {
	if o.ContactEmail == "" && o.ContactPhone == "" {
		return ""
	}
	return block(fmt.Sprintf("You can reach the %s through:", o.Name),
		kv("Email", o.ContactEmail),
		kv("Phone", o.ContactPhone),
	)
}

// OfficeHours renders an office's schedule.
func OfficeHours(o entity.Office) string {
	if o.OfficeHours == "" {
		return ""
	}
	return fmt.Sprintf("The %s is open %s.", o.Name, o.OfficeHours)
}

// OfficeHead renders who runs an office.
func OfficeHead(o entity.Office) string {
	if o.Head == "" {
		return ""
	}
	return fmt.Sprintf("The %s is headed by %s.", o.Name, o.Head)
}

// OfficeServices renders what an office offers.
func OfficeServices(o entity.Office) string {
	return listing(fmt.Sprintf("Services offered by the %s:", o.Name), o.Services, false)
}

// OfficeLocation renders where an office is.
func OfficeLocation(o entity.Office) string {
	place := officePlace(o)
	if place == "" {
		return ""
	}
	return fmt.Sprintf("The %s is located at %s.", o.Name, place)
}

// OfficeSummary renders many offices.
func OfficeSummary(items []entity.Office, threshold int) string {
	return Summary("offices", items, threshold,
		func(o entity.Office) string {
			return block(o.Name,
				kv("Location", officePlace(o)),
				kv("Office hours", o.OfficeHours),
				kv("Email", o.ContactEmail),
			)
		},
		func(o entity.Office) string {
			return dash(o.Name, Truncate(officePlace(o), ShortField))
		},
	)
}

// DepartmentGeneral renders every known field of a department.
func DepartmentGeneral(d entity.Department) string {
	title := d.Name
	if d.Code != "" {
		title = fmt.Sprintf("%s (%s)", d.Name, d.Code)
	}
	return block(title,
		kv("Description", d.Description),
		kv("Location", joinNonEmpty(", ", d.Location, d.Building)),
		kv("Head", d.Head),
		kv("Email", d.ContactEmail),
		kv("Phone", d.ContactPhone),
	)
}

// DepartmentContact renders how to reach a department.
func DepartmentContact(d entity.Department) string {
	if d.ContactEmail == "" && d.ContactPhone == "" {
		return ""
	}
	return block(fmt.Sprintf("You can reach the %s through:", d.Name),
		kv("Email", d.ContactEmail),
		kv("Phone", d.ContactPhone),
	)
}

// DepartmentHead renders who chairs a department.
func DepartmentHead(d entity.Department) string {
	if d.Head == "" {
		return ""
	}
	return fmt.Sprintf("The head of the %s is %s.", d.Name, d.Head)
}

// DepartmentLocation renders where a department is.
func DepartmentLocation(d entity.Department) string {
	place := joinNonEmpty(", ", d.Location, d.Building)
	if place == "" {
		return ""
	}
	return fmt.Sprintf("The %s is located at %s.", d.Name, place)
}

// DepartmentSummary renders many departments.
func DepartmentSummary(items []entity.Department, threshold int) string {
	return Summary("departments", items, threshold,
		func(d entity.Department) string {
			return block(d.Name,
				kv("Code", d.Code),
				kv("Location", joinNonEmpty(", ", d.Location, d.Building)),
				kv("Head", d.Head),
			)
		},
		func(d entity.Department) string {
			return dash(d.Name, Truncate(d.Description, MediumField))
		},
	)
}
