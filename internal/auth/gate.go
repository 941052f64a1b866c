// Package auth implements the authentication gate every tool call passes
// through before touching the backend.
//
// One process holds one resolved identity. The gate is injected into the
// dispatcher at construction time — there is no module-level state — and
// the resolved Context is immutable until ClearAuth replaces it wholesale.
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// ServiceKeyPrefix marks a service-style credential. Service keys are
// accepted without upfront backend verification; an invalid one surfaces
// as Unauthorized on the first real data call instead of at startup.
const ServiceKeyPrefix = "h9s_"

// ServiceSubject is the subject recorded for service-key identities,
// whose real identity resolution is deferred to the backend.
const ServiceSubject = "service"

// Context is the resolved caller identity. Created once on the first
// successful authentication; replaced only via ClearAuth + re-auth.
type Context struct {
	SubjectID     string
	WorkspaceID   string
	Email         string
	Authenticated bool
}

// Verifier resolves a generic credential against the backend.
// *api.Client satisfies it.
type Verifier interface {
	VerifyCredential(ctx context.Context, credential string) (api.Identity, error)
}

// attempt is one in-flight authentication shared by concurrent callers.
type attempt struct {
	done chan struct{}
	res  *Context
	err  error
}

// Gate guards handler execution behind a single authenticated identity.
type Gate struct {
	credential string
	workspace  string // fallback scope for service keys
	verifier   Verifier

	mu      sync.Mutex
	current *Context
	pending *attempt
}

// NewGate creates a gate for the process-wide credential. workspace is
// the configured workspace id used to scope service-key identities.
func NewGate(credential, workspace string, verifier Verifier) *Gate {
	return &Gate{credential: credential, workspace: workspace, verifier: verifier}
}

// EnsureAuthenticated returns the resolved identity, authenticating with
// the process credential on first use. Concurrent first-time callers
// share a single in-flight attempt rather than racing redundant
// verification requests.
func (g *Gate) EnsureAuthenticated(ctx context.Context) (*Context, error) {
	g.mu.Lock()
	if g.current != nil {
		c := g.current
		g.mu.Unlock()
		return c, nil
	}
	if g.pending != nil {
		att := g.pending
		g.mu.Unlock()
		select {
		case <-att.done:
			return att.res, att.err
		case <-ctx.Done():
			return nil, api.NewError(api.KindUnauthorized, "authentication cancelled")
		}
	}

	att := &attempt{done: make(chan struct{})}
	g.pending = att
	g.mu.Unlock()

	res, err := g.resolve(ctx, g.credential)

	g.mu.Lock()
	if err == nil {
		g.current = res
	}
	g.pending = nil
	g.mu.Unlock()

	att.res, att.err = res, err
	close(att.done)
	return res, err
}

// Authenticate resolves the given credential immediately. If an identity
// already exists it is returned unchanged — credential rotation requires
// ClearAuth first.
func (g *Gate) Authenticate(ctx context.Context, credential string) (*Context, error) {
	g.mu.Lock()
	if g.current != nil {
		c := g.current
		g.mu.Unlock()
		return c, nil
	}
	g.credential = credential
	g.mu.Unlock()
	return g.EnsureAuthenticated(ctx)
}

// IsAuthenticated reports whether an identity has been resolved.
func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != nil
}

// Scope implements api.ScopeSource: the identity slice the data client
// stamps onto every backend request.
func (g *Gate) Scope() (api.Scope, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return api.Scope{}, false
	}
	return api.Scope{SubjectID: g.current.SubjectID, WorkspaceID: g.current.WorkspaceID}, true
}

// ClearAuth drops the resolved identity. Used on shutdown and credential
// rotation; the next EnsureAuthenticated re-authenticates from scratch.
func (g *Gate) ClearAuth() {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()
}

// resolve runs the credential-shape-specific authentication path.
func (g *Gate) resolve(ctx context.Context, credential string) (*Context, error) {
	if credential == "" {
		return nil, api.NewError(api.KindUnauthorized, "no credential configured (set HELIOS9_API_KEY)")
	}

	// Service keys skip remote verification. The backend is the
	// authority on their validity — a bad key fails on first data call.
	if strings.HasPrefix(credential, ServiceKeyPrefix) {
		if g.workspace == "" {
			return nil, api.NewError(api.KindUnauthorized, "service key requires a configured workspace (set HELIOS9_WORKSPACE_ID)")
		}
		return &Context{
			SubjectID:     ServiceSubject,
			WorkspaceID:   g.workspace,
			Authenticated: true,
		}, nil
	}

	// Generic keys are JWT access tokens: verification is remote and
	// mandatory. Locally parsed claims only fill gaps in the backend's
	// answer — the signature check is the backend's job, not ours.
	identity, err := g.verifier.VerifyCredential(ctx, credential)
	if err != nil {
		if api.KindOf(err) == api.KindUnknown {
			return nil, api.NewError(api.KindUnauthorized, "credential verification failed")
		}
		return nil, err
	}

	resolved := &Context{
		SubjectID:     identity.ID,
		WorkspaceID:   identity.WorkspaceID,
		Email:         identity.Email,
		Authenticated: true,
	}
	if claims := parseClaims(credential); claims != nil {
		if resolved.Email == "" {
			resolved.Email, _ = claims["email"].(string)
		}
		if resolved.WorkspaceID == "" {
			resolved.WorkspaceID, _ = claims["workspace_id"].(string)
		}
	}
	if resolved.WorkspaceID == "" {
		resolved.WorkspaceID = g.workspace
	}
	if resolved.WorkspaceID == "" {
		return nil, api.NewError(api.KindUnauthorized, "credential resolves to no workspace")
	}
	return resolved, nil
}

// parseClaims extracts claims from a JWT-shaped credential without
// verifying the signature. Returns nil for opaque keys.
func parseClaims(credential string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil
	}
	return claims
}
