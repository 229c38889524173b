package search

import "github.com/kailas-cloud/campusbot/internal/domain/route"

// Status tells how a domain search ended.
type Status string

// Search statuses.
const (
	StatusFound       Status = "found"
	StatusEmpty       Status = "empty"
	StatusNeedsDetail Status = "needs-detail"
	StatusFailed      Status = "failed"
)

// Outcome is the formatted answer of one domain search. Text is always
// user-presentable, including on failure.
type Outcome struct {
	Domain route.Domain
	Text   string
	Status Status
	Count  int
}

// Failed reports whether the lookup itself failed.
func (o Outcome) Failed() bool { return o.Status == StatusFailed }
