package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Date is a calendar day in ISO "YYYY-MM-DD" form. Attendance and
// participation rows are keyed by Date, and range queries compare the
// string form directly: for ISO dates, lexicographic order is
// chronological order.
type Date string

const dateLayout = "2006-01-02"

func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return goerr.Wrap(ErrInvalidDate, "not a YYYY-MM-DD date", goerr.V("date", d))
	}
	return nil
}

func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }

// Time returns the day as a time.Time, or the zero time for a malformed
// date.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// DateRange is an inclusive [From, To] window. The zero value means
// "no restriction".
type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

func (r DateRange) IsZero() bool {
	return r.From == "" && r.To == ""
}

func (r DateRange) Validate() error {
	if err := r.From.Validate(); err != nil {
		return err
	}
	if err := r.To.Validate(); err != nil {
		return err
	}
	if r.To.Before(r.From) {
		return goerr.Wrap(ErrInvalidDate, "range end precedes start", goerr.V("from", r.From), goerr.V("to", r.To))
	}
	return nil
}

func (r DateRange) Contains(d Date) bool {
	if r.IsZero() {
		return true
	}
	return !d.Before(r.From) && !d.After(r.To)
}
