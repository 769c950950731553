package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcatalog/catalog-server/internal/validation"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Log in",
		Description: "Checks a username and password and sets the session cookie",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/logout",
		Summary:     "Log out",
		Description: "Ends the session and clears the session cookie. Succeeds without a session.",
		Tags:        []string{"Auth"},
	}, s.handleLogout)
}

// === DTOs ===

// LoginInput carries the raw credentials payload; fields are checked by the validator.
type LoginInput struct {
	RawBody []byte
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message  string `json:"message" doc:"Human-readable confirmation"`
	Username string `json:"username" doc:"Identity bound to the new session"`
}

// LoginOutput sets the session cookie.
type LoginOutput struct {
	SetCookie    http.Cookie `header:"Set-Cookie"`
	CacheControl string      `header:"Cache-Control"`
	Body         LoginResponse
}

// LogoutInput reads the session cookie when present.
type LogoutInput struct {
	Token string `cookie:"token" doc:"Session token"`
}

// LogoutOutput clears the session cookie.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct{}
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	raw, err := validation.DecodeJSON(input.RawBody)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	result, err := s.services.Auth.Login(ctx, raw)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	return &LoginOutput{
		SetCookie:    s.sessionCookie(result.Token),
		CacheControl: CacheNoStore,
		Body: LoginResponse{
			Message:  "Login successful!",
			Username: result.Username,
		},
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Token); err != nil {
		return nil, s.fail(ctx, "logout", err)
	}

	cookie := s.sessionCookie("")
	cookie.MaxAge = -1

	return &LogoutOutput{SetCookie: cookie}, nil
}

// sessionCookie builds the session cookie. There is no expiry: the session
// lasts until logout.
func (s *Server) sessionCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
