package notifier

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #3d3d3d; max-width: 600px; margin: 0 auto; padding: 24px;">
  <h1 style="text-align: center; font-weight: normal;">{{.Hosts}}</h1>
  {{if .Attending}}
  <p>Hi {{.FirstName}},</p>
  <p>Thank you for your RSVP — we can't wait to celebrate the {{.Label}} with you!</p>
  <p><strong>Your party of {{.GuestCount}}:</strong></p>
  <ul>
  {{range .Guests}}
    <li>{{.Name}}{{if .Dietary}} &mdash; dietary: {{.Dietary}}{{end}}{{if .Allergies}} &mdash; allergies: {{.Allergies}}{{end}}</li>
  {{end}}
  </ul>
  {{else}}
  <p>Hi {{.FirstName}},</p>
  <p>Thank you for letting us know. We'll miss you at the {{.Label}}!</p>
  {{end}}
  <p>Need to make changes? You can edit your RSVP until {{.DeadlineText}}:</p>
  <p style="text-align: center;"><a href="{{.EditURL}}" style="color: #8a6d3b;">Edit my RSVP</a></p>
  <p>With love,<br>{{.Hosts}}</p>
</body>
</html>`))

type confirmationData struct {
	Hosts        string
	Label        string
	FirstName    string
	Attending    bool
	GuestCount   int
	Guests       models.GuestList
	EditURL      string
	DeadlineText string
}

func firstName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// buildConfirmation renders the guest confirmation for one event.
func buildConfirmation(ev Event, r models.RSVP) (subject, html, text string) {
	attending := r.Attending == models.AttendingYes

	if attending {
		subject = fmt.Sprintf("We can't wait to see you! RSVP Confirmed - %s", ev.Hosts)
	} else {
		subject = fmt.Sprintf("Thank you for your RSVP - %s", ev.Hosts)
	}

	var buf strings.Builder
	err := confirmationTmpl.Execute(&buf, confirmationData{
		Hosts:        ev.Hosts,
		Label:        ev.Label,
		FirstName:    firstName(r.Name),
		Attending:    attending,
		GuestCount:   r.GuestCount,
		Guests:       r.Guests,
		EditURL:      ev.EditURL,
		DeadlineText: ev.DeadlineText,
	})
	if err != nil {
		// The template is static; a render failure still leaves the
		// text body to send.
		buf.Reset()
	}

	return subject, buf.String(), buildConfirmationText(ev, r)
}

func buildConfirmationText(ev Event, r models.RSVP) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", firstName(r.Name))
	if r.Attending == models.AttendingYes {
		fmt.Fprintf(&b, "Thank you for your RSVP - we can't wait to celebrate the %s with you!\n\n", ev.Label)
		fmt.Fprintf(&b, "Your party of %d:\n", r.GuestCount)
		for _, g := range r.Guests {
			fmt.Fprintf(&b, "  - %s", g.Name)
			if g.Dietary != "" {
				fmt.Fprintf(&b, " (dietary: %s)", g.Dietary)
			}
			if g.Allergies != "" {
				fmt.Fprintf(&b, " (allergies: %s)", g.Allergies)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "Thank you for letting us know. We'll miss you at the %s!\n\n", ev.Label)
	}
	fmt.Fprintf(&b, "Need to make changes? Edit your RSVP until %s: %s\n\n", ev.DeadlineText, ev.EditURL)
	fmt.Fprintf(&b, "With love,\n%s\n", ev.Hosts)
	return b.String()
}

func buildSMS(ev Event, r models.RSVP) string {
	if r.Attending == models.AttendingYes {
		return fmt.Sprintf("Hi %s! Thank you for your RSVP - we're so excited to celebrate the %s with you!\n\nNeed to make changes? Edit here: %s\n\nLast day to edit: %s\n\n- %s",
			firstName(r.Name), ev.Label, ev.EditURL, ev.DeadlineText, ev.Hosts)
	}
	return fmt.Sprintf("Hi %s, thank you for letting us know. We'll miss you at the %s!\n\nChanged your mind? Update your RSVP here: %s\n\nDeadline: %s\n\n- %s",
		firstName(r.Name), ev.Label, ev.EditURL, ev.DeadlineText, ev.Hosts)
}
