package confirmation

import (
	"bytes"
	"html/template"

	"github.com/robertarktes/visa-appointments/internal/domain"
)

const (
	ServiceName = "VFS Global - Visto Angola → Portugal"
	Subject     = "Confirmação de Agendamento - VFS Global"
)

var ArrivalInstructions = []string{
	"Chegue 15 minutos antes do horário agendado",
	"Traga todos os documentos originais necessários",
	"Apresente este e-mail ou o código de referência na recepção",
	"Em caso de dúvidas, entre em contato conosco",
}

var RequiredDocuments = []string{
	"Passaporte original com validade mínima de 6 meses",
	"Formulário de solicitação de visto preenchido",
	"Fotografias recentes (conforme especificações)",
	"Comprovantes financeiros",
	"Documentos específicos para o tipo de visto solicitado",
}

// BookingFields is the structured part of a confirmation, with codes and
// ISO dates as entered.
type BookingFields struct {
	FullName        string `json:"fullName"`
	BirthDate       string `json:"birthDate"`
	Gender          string `json:"gender"`
	PassportNumber  string `json:"passportNumber"`
	PassportExpiry  string `json:"passportExpiry"`
	Nationality     string `json:"nationality"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	VisaType        string `json:"visaType"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Message is a rendered confirmation ready for dispatch.
type Message struct {
	To            string        `json:"to"`
	Subject       string        `json:"subject"`
	ReferenceCode string        `json:"referenceCode"`
	Booking       BookingFields `json:"booking"`
	Fields        []Field       `json:"fields"`
	HTML          string        `json:"html"`
}

// BuildMessage projects rec into a confirmation. The output depends only on rec.
func BuildMessage(rec domain.Record) (Message, error) {
	a := rec.Applicant
	fields := []Field{
		{Label: "Nome", Value: a.FullName()},
		{Label: "Data de Nascimento", Value: LongDate(a.BirthDate)},
		{Label: "Nacionalidade", Value: a.Nationality.Label()},
		{Label: "Passaporte", Value: a.PassportNumber},
		{Label: "Tipo de Visto", Value: a.VisaType.Label()},
		{Label: "Data do Agendamento", Value: LongDate(a.AppointmentDate)},
		{Label: "Horário", Value: a.AppointmentTime.String()},
		{Label: "E-mail", Value: a.Email},
	}

	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, documentData{
		Service:       ServiceName,
		Subject:       Subject,
		FullName:      a.FullName(),
		ReferenceCode: rec.ReferenceCode,
		Fields:        fields,
		Instructions:  ArrivalInstructions,
		Documents:     RequiredDocuments,
		Year:          rec.CreatedAt.Year(),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:            a.Email,
		Subject:       Subject,
		ReferenceCode: rec.ReferenceCode,
		Booking: BookingFields{
			FullName:        a.FullName(),
			BirthDate:       a.BirthDate.String(),
			Gender:          string(a.Gender),
			PassportNumber:  a.PassportNumber,
			PassportExpiry:  a.PassportExpiry.String(),
			Nationality:     string(a.Nationality),
			Email:           a.Email,
			Phone:           a.Phone,
			VisaType:        string(a.VisaType),
			AppointmentDate: a.AppointmentDate.String(),
			AppointmentTime: a.AppointmentTime.String(),
		},
		Fields: fields,
		HTML:   buf.String(),
	}, nil
}

type documentData struct {
	Service       string
	Subject       string
	FullName      string
	ReferenceCode string
	Fields        []Field
	Instructions  []string
	Documents     []string
	Year          int
}

var documentTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Subject}}</title>
</head>
<body>
<div class="container">
<div class="header">
<h1>Agendamento Confirmado</h1>
<p>{{.Service}}</p>
</div>
<div class="content">
<div class="section">
<h2>Olá, {{.FullName}}!</h2>
<p>Seu agendamento foi realizado com sucesso. Abaixo estão os detalhes da sua consulta:</p>
</div>
<div class="reference-code">
<h3>Código de Referência</h3>
<h2>{{.ReferenceCode}}</h2>
<p><small>Guarde este código para futuras consultas</small></p>
</div>
<div class="details">
<h3>Detalhes do Agendamento</h3>
<table>
{{- range .Fields}}
<tr><td><strong>{{.Label}}:</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
</div>
<div class="important">
<h3>Informações Importantes</h3>
<ul>
{{- range .Instructions}}
<li>{{.}}</li>
{{- end}}
</ul>
</div>
<div class="section">
<h3>Documentos Necessários</h3>
<ul>
{{- range .Documents}}
<li>{{.}}</li>
{{- end}}
</ul>
</div>
</div>
<div class="footer">
<p>© {{.Year}} VFS Global - Agendamento de Visto Angola → Portugal</p>
<p>Este é um e-mail automático, não responda a esta mensagem.</p>
</div>
</div>
</body>
</html>
`))
