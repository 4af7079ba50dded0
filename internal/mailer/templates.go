package mailer

import (
	"html/template"
	"strings"

	"github.com/salesprofoma/kc-backend/internal/model"
)

// The bodies are rendered with html/template so every user-supplied field is
// escaped before it lands in markup. Visual styling is intentionally minimal.

var ownerTemplate = template.Must(template.New("owner").Parse(`<html>
<body>
	<h2>New lead for {{.BusinessName}}</h2>
	<p>Lead #{{.Lead.Id}} just came in through the website.</p>
	<table>
		<tr><td><b>Name</b></td><td>{{.Lead.Name}}</td></tr>
		<tr><td><b>Email</b></td><td>{{.Lead.Email}}</td></tr>
		<tr><td><b>Phone</b></td><td>{{.Lead.Phone}}</td></tr>
		<tr><td><b>Service</b></td><td>{{.Lead.Service}}</td></tr>
		<tr><td><b>Message</b></td><td>{{.Lead.Message}}</td></tr>
	</table>
	<p>Reply to this email to answer the customer directly.</p>
</body>
</html>`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
	<h2>Thanks for contacting {{.BusinessName}}</h2>
	<p>Hi {{.Lead.Name}}, we received your request and will get back to you shortly.</p>
	<p>Your reference number is <b>#{{.Lead.Id}}</b>.</p>
	<table>
		<tr><td><b>Service</b></td><td>{{.Lead.Service}}</td></tr>
		<tr><td><b>Phone</b></td><td>{{.Lead.Phone}}</td></tr>
		<tr><td><b>Message</b></td><td>{{.Lead.Message}}</td></tr>
	</table>
</body>
</html>`))

type templateData struct {
	BusinessName string
	Lead         model.Lead
}

func renderOwnerBody(businessName string, lead model.Lead) (string, error) {
	return render(ownerTemplate, businessName, lead)
}

func renderConfirmationBody(businessName string, lead model.Lead) (string, error) {
	return render(confirmationTemplate, businessName, lead)
}

func render(t *template.Template, businessName string, lead model.Lead) (string, error) {
	var builder strings.Builder
	err := t.Execute(&builder, templateData{BusinessName: businessName, Lead: lead})
	return builder.String(), err
}
