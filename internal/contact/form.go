package contact

import (
	"errors"
	"html"
	"net/mail"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Wire names of the form fields.
const (
	FieldName    = "nombre"
	FieldSubject = "asunto"
	FieldPhone   = "telefono"
	FieldEntity  = "entidad"
	FieldEmail   = "email"
	FieldMessage = "mensaje"
	FieldConsent = "acepta"
)

// RequiredFields lists every field the relay insists on, in form order.
var RequiredFields = []string{
	FieldName, FieldSubject, FieldPhone, FieldEntity, FieldEmail, FieldMessage, FieldConsent,
}

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrConsentRequired = errors.New("consent required")
)

// Client-visible failure strings.
const (
	MsgMissingFields   = "Faltan campos obligatorios."
	MsgInvalidEmail    = "Email inválido."
	MsgConsentRequired = "Debes aceptar el tratamiento de datos personales."
	MsgReceived        = "Mensaje recibido. Si el servidor está configurado para enviar correos, será entregado al equipo. Puedes cerrar esta pestaña y volver a la web."
)

// UserMessage maps a validation error to the text shown to the sender.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return MsgMissingFields
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, ErrConsentRequired):
		return MsgConsentRequired
	}
	return ""
}

// Form is a contact form submission.
type Form struct {
	Name    string
	Subject string
	Phone   string
	Entity  string
	Email   string
	Message string
	Consent bool
}

// Values encodes the form for a POST.
func (f Form) Values() url.Values {
	v := url.Values{}
	v.Set(FieldName, f.Name)
	v.Set(FieldSubject, f.Subject)
	v.Set(FieldPhone, f.Phone)
	v.Set(FieldEntity, f.Entity)
	v.Set(FieldEmail, f.Email)
	v.Set(FieldMessage, f.Message)
	if f.Consent {
		v.Set(FieldConsent, "1")
	}
	return v
}

// Gate enforces the consent checkbox before anything is sent.
func (f Form) Gate() error {
	if !f.Consent {
		return ErrConsentRequired
	}
	return nil
}

var strict = bluemonday.StrictPolicy()

// ParseForm validates posted values. Every required field must be present
// and non-blank, and the email must be a bare address. Single-line fields
// have CR/LF folded into spaces and any markup stripped.
func ParseForm(v url.Values) (Form, error) {
	for _, k := range RequiredFields {
		if strings.TrimSpace(v.Get(k)) == "" {
			return Form{}, ErrMissingFields
		}
	}

	f := Form{
		Name:    cleanLine(v.Get(FieldName)),
		Subject: cleanLine(v.Get(FieldSubject)),
		Phone:   cleanLine(v.Get(FieldPhone)),
		Entity:  cleanLine(v.Get(FieldEntity)),
		Email:   cleanLine(v.Get(FieldEmail)),
		Message: stripMarkup(strings.TrimSpace(v.Get(FieldMessage))),
		Consent: true,
	}

	if !validEmail(f.Email) {
		return Form{}, ErrInvalidEmail
	}

	return f, nil
}

// cleanLine trims and folds line breaks so the value is safe in a header.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return stripMarkup(s)
}

func stripMarkup(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
