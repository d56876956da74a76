package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/pkg/httpx"
	"github.com/beamhq/beam/pkg/jwtx"
	"github.com/beamhq/beam/pkg/slogx"

	_ "github.com/beamhq/beam/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier  jwtx.Verifier
	startTime time.Time
	logger    *slog.Logger
	store     store.Store

	// AssetsDir is served under /images/ so avatar URLs resolve.
	AssetsDir string

	AuthService        *service.AuthService
	RegisterService    *service.RegisterService
	InviteService      *service.InviteService
	UserService        *service.UserService
	ForwardAuthService *service.ForwardAuthService
}

func NewRouter(verifier jwtx.Verifier, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		verifier:  verifier,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerUser()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	if r.AssetsDir != "" {
		r.Mux.Handle("GET /images/",
			http.StripPrefix("/images/", http.FileServer(http.Dir(r.AssetsDir))))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Beam Identity Service API
//	@version		0.1.0
//	@description	Identity subsystem for the Beam media server: login, invite-gated
//	@description	registration with first-owner bootstrap, forwarded-auth bridging and
//	@description	self-service account management.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	register := &RegisterHandler{RegisterService: r.RegisterService}
	r.Mux.Handle("POST /api/v1/auth/register",
		httpx.Chain(register,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	whoami := &WhoamiHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /api/v1/auth/whoami",
		httpx.Chain(whoami,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	adminExists := &AdminExistsHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /api/v1/auth/admin_exists",
		httpx.Chain(adminExists,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Trusted-proxy path: identity is asserted by the X-Forwarded-User header.
	forward := &ForwardAuthHandler{ForwardAuthService: r.ForwardAuthService}
	r.Mux.Handle("GET /api/v1/auth/forward",
		httpx.Chain(forward,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	ownerOnly := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("owner"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/auth/invites", ownerOnly(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /api/v1/auth/new_invite", ownerOnly(http.HandlerFunc(h.HandleMint)))
	r.Mux.Handle("DELETE /api/v1/auth/token/{token}", ownerOnly(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerUser() {
	h := &UserHandler{UserService: r.UserService}

	secured := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("PATCH /api/v1/auth/password", secured(http.HandlerFunc(h.HandleChangePassword)))
	r.Mux.Handle("PATCH /api/v1/auth/username", secured(http.HandlerFunc(h.HandleChangeUsername)))
	r.Mux.Handle("DELETE /api/v1/user/delete", secured(http.HandlerFunc(h.HandleDeleteSelf)))
	r.Mux.Handle("POST /api/v1/user/avatar", secured(http.HandlerFunc(h.HandleUploadAvatar)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
}
