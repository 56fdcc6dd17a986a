package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/logging"
	"github.com/dmitrijs2005/bloodconnect/internal/netx"
)

// DefaultContactEndpoint receives contact form submissions.
const DefaultContactEndpoint = "https://645e38f48d08100293f9f277.mockapi.io/contact"

// DefaultContactTimeout bounds one submission.
const DefaultContactTimeout = 10 * time.Second

// ContactService submits the About page contact form. It is independent of
// the session manager.
type ContactService interface {
	Submit(ctx context.Context, msg models.ContactMessage) error
}

type contactService struct {
	endpoint string
	client   *http.Client
	log      logging.Logger
}

// NewContactService posts to endpoint with the given per-request timeout.
// Empty endpoint and zero timeout select the defaults.
func NewContactService(endpoint string, timeout time.Duration, log logging.Logger) ContactService {
	if endpoint == "" {
		endpoint = DefaultContactEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultContactTimeout
	}
	if log == nil {
		log = logging.Discard()
	}
	return &contactService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log.With("component", "contact"),
	}
}

// Submit validates msg and sends it as a single JSON POST. A non-2xx answer
// yields ErrSubmissionFailed, a transport failure ErrUnavailable.
func (c *contactService) Submit(ctx context.Context, msg models.ContactMessage) error {
	if err := ValidateContact(msg); err != nil {
		return err
	}

	err := netx.PostJSON(ctx, c.client, c.endpoint, msg)
	if err == nil {
		c.log.Info(ctx, "contact message sent", "subject", msg.Subject)
		return nil
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		c.log.Warn(ctx, "contact submission rejected", "status", se.Code)
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	c.log.Error(ctx, "contact endpoint unreachable", "error", err)
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// ValidateContact requires every field and a plausible email address.
func ValidateContact(msg models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" ||
		strings.TrimSpace(msg.Subject) == "" || strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("%w: please fill in all fields", ErrValidation)
	}
	if !emailPattern.MatchString(msg.Email) {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, msg.Email)
	}
	return nil
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
