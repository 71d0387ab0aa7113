package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a composed mail ready for a Mailer.
type Message struct {
	ID        string
	To        string
	From      string
	ReplyTo   string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Compose builds the outgoing message for a validated form.
func Compose(f Form, cfg RelayConfig, now time.Time) Message {
	var b strings.Builder
	b.WriteString("Nuevo mensaje desde el formulario web:\n\n")
	fmt.Fprintf(&b, "Nombre: %s\n", f.Name)
	fmt.Fprintf(&b, "Teléfono: %s\n", f.Phone)
	fmt.Fprintf(&b, "Entidad: %s\n", f.Entity)
	fmt.Fprintf(&b, "Email: %s\n\n", f.Email)
	fmt.Fprintf(&b, "Mensaje:\n%s\n", f.Message)

	return Message{
		ID:        uuid.NewString(),
		To:        cfg.To,
		From:      cfg.From,
		ReplyTo:   f.Email,
		Subject:   cfg.SubjectPrefix + f.Subject,
		Body:      b.String(),
		CreatedAt: now.UTC(),
	}
}
