// Package contact implements the contact form gate and the mail relay.
//
// The gate refuses to submit a form whose consent box is unchecked. The
// relay accepts a fixed field set over a form POST, validates it, composes a
// message and hands it to a Mailer. How mail leaves the system is outside
// this package: LogMailer only records the message and Outbox stores it in
// SQLite for another process to deliver.
//
// # Relay
//
//	relay := contact.NewRelay(contact.NewLogMailer(logger), contact.RelayConfig{
//	    To:            "atencionalcliente@sjerp.com",
//	    From:          "no-reply@sjterp.com",
//	    SubjectPrefix: "[Web SJT] ",
//	    Redirect:      "index.html#contacto",
//	}, logger)
//	r := chi.NewRouter()
//	r.Post("/contact", relay.ServeHTTP)
//
// # Client
//
//	c := contact.NewClient(relayURL, nil)
//	msg, err := c.Submit(ctx, form)
//	var rerr *contact.RelayError
//	if errors.As(err, &rerr) {
//	    fmt.Println(rerr.Message) // shown to the user as is
//	}
package contact
