package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validValues() url.Values {
	return Form{
		Name:    "Ana Pérez",
		Subject: "Demo",
		Phone:   "+591 700 00000",
		Entity:  "Cooperativa X",
		Email:   "ana@example.com",
		Message: "Quisiera una demostración.",
		Consent: true,
	}.Values()
}

func TestParseForm(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v url.Values)
		wantErr error
	}{
		{"valid", func(url.Values) {}, nil},
		{"missing name", func(v url.Values) { v.Del(FieldName) }, ErrMissingFields},
		{"blank subject", func(v url.Values) { v.Set(FieldSubject, "   ") }, ErrMissingFields},
		{"no consent", func(v url.Values) { v.Del(FieldConsent) }, ErrMissingFields},
		{"bad email", func(v url.Values) { v.Set(FieldEmail, "not-an-email") }, ErrInvalidEmail},
		{"display name email", func(v url.Values) { v.Set(FieldEmail, "Ana <ana@example.com>") }, ErrInvalidEmail},
		{"no tld", func(v url.Values) { v.Set(FieldEmail, "ana@localhost") }, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			tt.mutate(v)
			_, err := ParseForm(v)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseForm_CleansHeaders(t *testing.T) {
	v := validValues()
	v.Set(FieldSubject, "Hola\r\nBcc: victim@example.com")
	v.Set(FieldName, "  <b>Ana</b> & Co ")
	v.Set(FieldMessage, "Línea 1\nLínea 2")

	f, err := ParseForm(v)
	require.NoError(t, err)

	require.NotContains(t, f.Subject, "\n")
	require.NotContains(t, f.Subject, "\r")
	require.Equal(t, "Ana & Co", f.Name)
	require.Equal(t, "Línea 1\nLínea 2", f.Message)
}

func TestCompose(t *testing.T) {
	f, err := ParseForm(validValues())
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := Compose(f, RelayConfig{To: "to@sjerp.com", From: "no-reply@sjterp.com", SubjectPrefix: "[Web SJT] "}, now)

	require.Equal(t, "[Web SJT] Demo", msg.Subject)
	require.Equal(t, "ana@example.com", msg.ReplyTo)
	require.Equal(t, "to@sjerp.com", msg.To)
	require.NotEmpty(t, msg.ID)
	require.True(t, strings.HasPrefix(msg.Body, "Nuevo mensaje desde el formulario web:"))
	require.Contains(t, msg.Body, "Entidad: Cooperativa X\n")
	require.Contains(t, msg.Body, "Mensaje:\nQuisiera una demostración.\n")
	require.Equal(t, now, msg.CreatedAt)
}

func newRelayServer(t *testing.T, mailer Mailer) *httptest.Server {
	t.Helper()
	relay := NewRelay(mailer, RelayConfig{To: "to@x.com", From: "from@x.com", SubjectPrefix: "[T] ", Redirect: "/index.html#contacto"}, nil)
	srv := httptest.NewServer(relay)
	t.Cleanup(srv.Close)
	return srv
}

func TestRelay_ServeHTTP(t *testing.T) {
	var got []Message
	srv := newRelayServer(t, MailerFunc(func(_ context.Context, m Message) error {
		got = append(got, m)
		return nil
	}))

	c := NewClient(srv.URL, nil)

	f, err := ParseForm(validValues())
	require.NoError(t, err)

	ack, err := c.Submit(context.Background(), f)
	require.NoError(t, err)
	require.NotEmpty(t, ack)
	require.Len(t, got, 1)
	require.Equal(t, "[T] Demo", got[0].Subject)

	bad := f
	bad.Email = "nope"
	_, err = c.Submit(context.Background(), bad)
	var rerr *RelayError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, http.StatusBadRequest, rerr.StatusCode)
	require.Equal(t, MsgInvalidEmail, rerr.Message)

	bad = f
	bad.Phone = ""
	_, err = c.Submit(context.Background(), bad)
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, MsgMissingFields, rerr.Message)

	require.Len(t, got, 1)
}

func TestRelay_DeliveryFailureStillAcknowledges(t *testing.T) {
	srv := newRelayServer(t, MailerFunc(func(context.Context, Message) error {
		return errors.New("smtp down")
	}))

	resp, err := http.PostForm(srv.URL, validValues())
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestClient_GateBlocksWithoutConsent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls++ }))
	defer srv.Close()

	f, err := ParseForm(validValues())
	require.NoError(t, err)
	f.Consent = false

	_, err = NewClient(srv.URL, nil).Submit(context.Background(), f)
	require.True(t, IsRelayError(err))
	require.Equal(t, MsgConsentRequired, err.Error())
	require.Zero(t, calls)
}

func TestOutbox(t *testing.T) {
	ob, err := OpenOutbox(":memory:")
	require.NoError(t, err)
	defer ob.Close()

	ctx := context.Background()
	f, err := ParseForm(validValues())
	require.NoError(t, err)

	first := Compose(f, RelayConfig{To: "a@x.com"}, time.Unix(100, 0))
	second := Compose(f, RelayConfig{To: "b@x.com"}, time.Unix(200, 0))
	require.NoError(t, ob.Send(ctx, second))
	require.NoError(t, ob.Send(ctx, first))

	pending, err := ob.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, first.ID, pending[0].ID)
	require.Equal(t, first.Body, pending[0].Body)

	require.NoError(t, ob.MarkSent(ctx, first.ID, time.Unix(300, 0)))
	require.Error(t, ob.MarkSent(ctx, first.ID, time.Unix(301, 0)))

	pending, err = ob.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].ID)
}
