package contact

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxFormBytes bounds the request body the relay will parse.
const maxFormBytes = 64 * 1024

// RelayConfig holds the fixed parts of every outgoing message.
type RelayConfig struct {
	To            string
	From          string
	SubjectPrefix string

	// Redirect is where a successfully delivered submission is sent back to.
	Redirect string
}

// Relay is the HTTP endpoint behind the contact form.
type Relay struct {
	mailer Mailer
	cfg    RelayConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewRelay creates a relay delivering through mailer.
func NewRelay(mailer Mailer, cfg RelayConfig, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Relay{mailer: mailer, cfg: cfg, logger: logger, now: time.Now}
}

// ServeHTTP validates the posted form and hands the message to the mailer.
//
// Validation failures answer 400 with a client-visible text. A delivered
// message redirects back to the page; a failed delivery still answers 200
// with an acknowledgement, because the submission itself was accepted.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	req.Body = http.MaxBytesReader(w, req.Body, maxFormBytes)
	if err := req.ParseForm(); err != nil {
		r.logger.Warn("contact form unreadable", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, MsgMissingFields)
		return
	}

	form, err := ParseForm(req.PostForm)
	if err != nil {
		r.logger.Info("contact form rejected", "reason", err)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, UserMessage(err))
		return
	}

	msg := Compose(form, r.cfg, r.now())
	if err := r.mailer.Send(req.Context(), msg); err != nil {
		r.logger.Error("contact delivery failed", "id", msg.ID, "error", err)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, MsgReceived)
		return
	}

	r.logger.Info("contact message accepted", "id", msg.ID)
	http.Redirect(w, req, r.cfg.Redirect, http.StatusFound)
}

// RelayError is a failure reported by the relay in words meant for the user.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	return e.Message
}

// IsRelayError reports whether err carries a relay message.
func IsRelayError(err error) bool {
	var rerr *RelayError
	return errors.As(err, &rerr)
}
