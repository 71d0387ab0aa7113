package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/sjt-catalog/internal/contact"
)

var fieldLabels = [...]string{"Nombre", "Asunto", "Teléfono", "Entidad", "Email", "Mensaje"}

// Focus positions after the text inputs.
const (
	focusConsent = len(fieldLabels) + iota
	focusSubmit
	focusCount
)

// ContactDoneMsg is sent when the relay answers a submission.
type ContactDoneMsg struct {
	Text string
	Err  error
}

type contactForm struct {
	inputs    []textinput.Model
	consent   bool
	focus     int
	sending   bool
	status    string
	statusErr bool
}

func newContactForm() contactForm {
	inputs := make([]textinput.Model, len(fieldLabels))
	for i, label := range fieldLabels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 200
		ti.Width = 50
		inputs[i] = ti
	}
	inputs[len(inputs)-1].CharLimit = 2000

	f := contactForm{inputs: inputs}
	f.setFocus(0)
	return f
}

// typing reports whether a text input has the focus.
func (f *contactForm) typing() bool {
	return f.focus < len(f.inputs)
}

func (f *contactForm) setFocus(i int) tea.Cmd {
	f.focus = ((i % focusCount) + focusCount) % focusCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *contactForm) value() contact.Form {
	v := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	return contact.Form{
		Name:    v(0),
		Subject: v(1),
		Phone:   v(2),
		Entity:  v(3),
		Email:   v(4),
		Message: v(5),
		Consent: f.consent,
	}
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.consent = false
	f.setFocus(0)
}

func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	if !f.typing() {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// submit applies the consent gate and returns the command that posts the
// form, or nil when the gate blocked it.
func (f *contactForm) submit(ctx context.Context, client *contact.Client) tea.Cmd {
	form := f.value()
	if err := form.Gate(); err != nil {
		f.status, f.statusErr = contact.UserMessage(err), true
		return nil
	}
	if client == nil {
		f.status, f.statusErr = "No hay un servidor de contacto configurado.", true
		return nil
	}

	f.sending = true
	f.status, f.statusErr = "Enviando…", false
	return func() tea.Msg {
		text, err := client.Submit(ctx, form)
		return ContactDoneMsg{Text: text, Err: err}
	}
}

func (f *contactForm) done(msg ContactDoneMsg) {
	f.sending = false

	var rerr *contact.RelayError
	switch {
	case errors.As(msg.Err, &rerr):
		f.status, f.statusErr = rerr.Message, true
	case msg.Err != nil:
		f.status, f.statusErr = fmt.Sprintf("No se pudo enviar el mensaje: %v", msg.Err), true
	default:
		f.status, f.statusErr = msg.Text, false
		f.reset()
	}
}
