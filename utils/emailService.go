package utils

import (
	"bytes"
	"fmt"
	"html/template"

	"academy/logger"
)

// Notifier delivers learner e-mails. It is set at startup; nil disables them.
var Notifier Mailer

var emailLayout = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
	<style>
		body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
		.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
		.header { background-color: #1E1B4B; padding: 30px; text-align: center; }
		.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
		.content { padding: 40px 30px; color: #1E1B4B; line-height: 1.6; }
		.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; border-left: 4px solid #6366F1; margin: 20px 0; }
		.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>OGUZ AI ACADEMY</h1></div>
		<div class="content">
			<h2>{{.Title}}</h2>
			<p>Dear {{.Name}},</p>
			{{range .Paragraphs}}<p>{{.}}</p>
			{{end}}{{with .Highlight}}<div class="info-box">{{.}}</div>{{end}}
		</div>
		<div class="footer">Happy learning!<br>Oguz AI Academy Team</div>
	</div>
</body>
</html>`))

type email struct {
	To         string
	Subject    string
	Title      string
	Name       string
	Paragraphs []string
	Highlight  string
}

func renderEmail(e email) (string, error) {
	var buf bytes.Buffer
	if err := emailLayout.Execute(&buf, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func deliver(mailer Mailer, e email) error {
	body, err := renderEmail(e)
	if err != nil {
		return fmt.Errorf("render %q: %w", e.Subject, err)
	}
	return mailer.Send([]string{e.To}, e.Subject, body)
}

// notify sends in the background so requests never wait on the mail provider
func notify(e email) {
	mailer := Notifier
	if mailer == nil || e.To == "" {
		return
	}
	go func() {
		if err := deliver(mailer, e); err != nil {
			logger.Log.Warnw("failed to send email", "subject", e.Subject, "error", err)
		}
	}()
}

// --- Triggers ---

func welcomeEmail(to, username string) email {
	return email{
		To:      to,
		Subject: "Welcome to Oguz AI Academy",
		Title:   "Welcome Onboard!",
		Name:    username,
		Paragraphs: []string{
			"Your account has been successfully created.",
			"Browse the catalog, enroll in a course and ask the AI assistant whenever you get stuck.",
		},
	}
}

func enrollmentEmail(to, username, courseTitle string) email {
	return email{
		To:         to,
		Subject:    "Course Enrollment Confirmation - " + courseTitle,
		Title:      "Enrollment Successful!",
		Name:       username,
		Paragraphs: []string{"You have successfully enrolled in the course below. Work through the lessons and take the quiz to complete it."},
		Highlight:  courseTitle,
	}
}

func completionEmail(to, username, courseTitle string, score, total int) email {
	return email{
		To:         to,
		Subject:    "Course Completed - " + courseTitle,
		Title:      "Congratulations!",
		Name:       username,
		Paragraphs: []string{"You completed " + courseTitle + "."},
		Highlight:  fmt.Sprintf("Quiz score: %d / %d", score, total),
	}
}

func SendWelcomeEmail(to, username string) {
	notify(welcomeEmail(to, username))
}

func SendEnrollmentEmail(to, username, courseTitle string) {
	notify(enrollmentEmail(to, username, courseTitle))
}

func SendCompletionEmail(to, username, courseTitle string, score, total int) {
	notify(completionEmail(to, username, courseTitle, score, total))
}
