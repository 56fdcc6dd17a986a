package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContact struct {
	got  []models.ContactMessage
	resp error
}

func (f *fakeContact) Submit(_ context.Context, msg models.ContactMessage) error {
	f.got = append(f.got, msg)
	if f.resp != nil {
		return f.resp
	}
	return services.ValidateContact(msg)
}

func TestContact_Outcomes(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		resp  error
		want  string
	}{
		{"sent", []string{"Asha", "asha@example.com", "Hi", "Hello there"}, nil, "Message Sent!"},
		{"missing subject", []string{"Asha", "asha@example.com", "", "Hello"}, nil, "Please fill in all fields."},
		{"bad email", []string{"Asha", "asha@", "Hi", "Hello"}, nil, "Please enter a valid email address."},
		{"rejected", []string{"Asha", "asha@example.com", "Hi", "Hello"}, fmt.Errorf("%w: 500", services.ErrSubmissionFailed), "Submission Failed"},
		{"unreachable", []string{"Asha", "asha@example.com", "Hi", "Hello"}, fmt.Errorf("%w: dial", services.ErrUnavailable), "Failed to connect to the server."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ctx, out := newTestApp(t)
			fc := &fakeContact{resp: tt.resp}
			a.contact = fc
			stubInputs(t, tt.texts)

			require.NoError(t, a.Contact(ctx))
			assert.Contains(t, out.String(), tt.want)
			require.Len(t, fc.got, 1)
		})
	}
}

func TestContact_DefaultsFromSession(t *testing.T) {
	a, ctx, _ := newTestApp(t)
	_, err := a.session.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	fc := &fakeContact{}
	a.contact = fc
	stubInputs(t, []string{"", "", "Question", "How do I donate?"})

	require.NoError(t, a.Contact(ctx))
	require.Len(t, fc.got, 1)
	assert.Equal(t, models.ContactMessage{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Question",
		Message: "How do I donate?",
	}, fc.got[0])
}

func TestWithDefault(t *testing.T) {
	assert.Equal(t, "Name", withDefault("Name", "Alice", false))
	assert.Equal(t, "Name", withDefault("Name", "", true))
	assert.Equal(t, "Name [Alice]", withDefault("Name", "Alice", true))
}
