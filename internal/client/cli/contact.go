package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
)

// Contact collects the contact form and sends it. The signed-in user's name
// and email are offered as defaults.
func (a *App) Contact(ctx context.Context) error {
	var msg models.ContactMessage
	var err error

	u, signedIn := services.Session(ctx).User()

	if msg.Name, err = getSimpleText(a.reader, withDefault("Name", u.Name, signedIn), a.out); err != nil {
		return err
	}
	if msg.Name == "" && signedIn {
		msg.Name = u.Name
	}
	if msg.Email, err = getSimpleText(a.reader, withDefault("Email", u.Email, signedIn), a.out); err != nil {
		return err
	}
	if msg.Email == "" && signedIn {
		msg.Email = u.Email
	}
	if msg.Subject, err = getSimpleText(a.reader, "Subject", a.out); err != nil {
		return err
	}
	if msg.Message, err = getMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}

	err = a.contact.Submit(ctx, msg)
	switch {
	case err == nil:
		a.println("Message Sent! Thank you for contacting us. We'll get back to you soon.")
	case errors.Is(err, services.ErrValidation) && msg.Email != "" && !services.ValidEmail(msg.Email):
		a.println("Validation Error:", errInvalidEmail)
	case errors.Is(err, services.ErrValidation):
		a.println("Validation Error:", errFillAllFields)
	case errors.Is(err, services.ErrSubmissionFailed):
		a.println("Submission Failed: Something went wrong. Please try again.")
	default:
		a.println("Error: Failed to connect to the server.")
	}
	return nil
}

func withDefault(prompt, def string, ok bool) string {
	if !ok || def == "" {
		return prompt
	}
	return prompt + " [" + def + "]"
}
