package services

import "context"

type sessionKey struct{}

// WithSession returns a child context that provides s to everything running
// under it.
func WithSession(ctx context.Context, s SessionService) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// Session returns the session service provided by ctx. It panics when no
// provider was installed with WithSession.
func Session(ctx context.Context) SessionService {
	s, ok := SessionFrom(ctx)
	if !ok {
		panic("services.Session called outside of a session provider")
	}
	return s
}

// SessionFrom is the non-panicking form of Session.
func SessionFrom(ctx context.Context) (SessionService, bool) {
	s, ok := ctx.Value(sessionKey{}).(SessionService)
	return s, ok && s != nil
}
