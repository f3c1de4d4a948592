package pages

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/910cpr/ew2landers/internal/config"
	"github.com/910cpr/ew2landers/internal/schedule"
)

// SessionICS renders a one-event calendar file for a session, for the
// "add to calendar" link on its page. Classes are assumed to run two hours;
// the booking page is the authority on exact end times.
func SessionICS(sess *schedule.Session, org config.Organization) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + org.Name + "//schedule//EN")

	ev := cal.AddEvent(fmt.Sprintf("session-%d@910cpr.com", sess.EnrollmentID))
	ev.SetCreatedTime(time.Now())
	ev.SetDtStampTime(time.Now())
	ev.SetStartAt(sess.Start)
	ev.SetEndAt(sess.Start.Add(2 * time.Hour))
	ev.SetSummary(sess.CourseTitle)
	if sess.LocationText != "" {
		ev.SetLocation(sess.LocationText)
	}
	if sess.RegistrationURL != "" {
		ev.SetURL(sess.RegistrationURL)
		ev.SetDescription("Register: " + sess.RegistrationURL)
	}
	if org.Email != "" {
		ev.SetOrganizer("mailto:"+org.Email, ics.WithCN(org.Name))
	}

	return cal.Serialize()
}
