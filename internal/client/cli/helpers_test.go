package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
	"github.com/dmitrijs2005/bloodconnect/internal/logging"
	"github.com/stretchr/testify/require"
)

// newTestApp wires an App over an in-memory store with no login latency and
// returns a context carrying its session.
func newTestApp(t *testing.T) (*App, context.Context, *bytes.Buffer) {
	t.Helper()

	store := storage.NewMemoryStore()
	sm := services.NewSessionManager(store, services.SessionOptions{})
	require.NoError(t, sm.Hydrate(context.Background()))

	out := &bytes.Buffer{}
	a := &App{
		store:   store,
		session: sm,
		donors:  services.NewDonorService(store, nil),
		log:     logging.Discard(),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     out,
	}
	return a, services.WithSession(context.Background(), sm), out
}

// stubInputs feeds texts to getSimpleText and passwords to getPassword in
// order. Running out of answers yields io.EOF.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()

	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})

	next := func() (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = strings.TrimSpace(strings.TrimSuffix(toString(a), "\n"))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return ""
}
