package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/foundation/core/handler"
	"github.com/dmitrymomot/foundation/core/response"

	"github.com/contentgate/contentgate/internal/common"
)

// authRequest is the POST body of the auth entry point. The device block
// describes the client requesting authorization; authParams carries the
// user-entered credentials.
type authRequest struct {
	Device     deviceInfo `json:"device"`
	AuthParams authParams `json:"authParams"`
}

type deviceInfo struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	OSVersion    string `json:"os_version"`
}

type authParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	SessionKey string   `json:"sessionKey"`
	Products   []string `json:"products"`
}

type validateResponse struct {
	Products []string `json:"products"`
}

// handleAuth implements POST /paywallproxy/v1.0.0/json/auth/{product_code}.
func (s *Server) handleAuth(ctx *Context) handler.Response {
	product := ctx.Param("product_code")

	if got := ctx.Request().Header.Get("Authorization"); got != common.AuthScheme {
		s.metrics.RecordAuth(codeInvalidAuthScheme)
		return errorResponse(http.StatusBadRequest, codeInvalidAuthScheme,
			"The authorization token is missing or incorrect.")
	}

	var req authRequest
	if err := json.NewDecoder(ctx.Request().Body).Decode(&req); err != nil {
		s.metrics.RecordAuth(codeInvalidFormat)
		return errorResponse(http.StatusBadRequest, codeInvalidFormat,
			"Could not decode the post body as json.")
	}
	if req.Device.Manufacturer == "" || req.Device.Model == "" || req.Device.OSVersion == "" {
		s.metrics.RecordAuth(codeInvalidFormat)
		return errorResponse(http.StatusBadRequest, codeInvalidFormat,
			"The device record is missing or incomplete.")
	}
	if req.AuthParams.Username == "" || req.AuthParams.Password == "" {
		s.metrics.RecordAuth(codeInvalidFormat)
		return errorResponse(http.StatusBadRequest, codeInvalidFormat,
			"The username and password are required.")
	}

	token, products, err := s.paywall.Authenticate(ctx, req.AuthParams.Username, req.AuthParams.Password, product)
	if err != nil {
		code := errorCode(err)
		s.metrics.RecordAuth(code)
		// Log the outcome, never the password.
		s.logger.Warn(ctx, "authentication failed",
			"username", req.AuthParams.Username, "product", product, "code", code)
		return serviceErrorResponse(err)
	}

	s.metrics.RecordAuth("ok")
	s.logger.Info(ctx, "session issued",
		"username", req.AuthParams.Username, "product", product)
	return response.JSON(authResponse{SessionKey: token, Products: products})
}

// handleValidate implements GET /paywallproxy/v1.0.0/json/validate/{product_code}.
// The session key arrives in the Authorization header:
//
//	Authorization: PolarPaywallProxySessionv1.0.0 session:<token>
func (s *Server) handleValidate(ctx *Context) handler.Response {
	product := ctx.Param("product_code")

	token, ok := sessionToken(ctx.Request().Header.Get("Authorization"))
	if !ok {
		s.metrics.RecordValidate(codeInvalidAuthScheme)
		return errorResponse(http.StatusBadRequest, codeInvalidAuthScheme,
			"The authorization token is missing or incorrect.")
	}

	products, err := s.paywall.Validate(ctx, token, product)
	if err != nil {
		code := errorCode(err)
		s.metrics.RecordValidate(code)
		s.logger.Warn(ctx, "validation failed", "product", product, "code", code)
		return serviceErrorResponse(err)
	}

	s.metrics.RecordValidate("ok")
	return response.JSON(validateResponse{Products: products})
}

// sessionToken extracts the token from a session Authorization header value.
func sessionToken(header string) (string, bool) {
	scheme, rest, found := strings.Cut(header, " ")
	if !found || scheme != common.SessionScheme {
		return "", false
	}
	token, hasPrefix := strings.CutPrefix(rest, common.SessionTokenPrefix)
	if !hasPrefix || token == "" {
		return "", false
	}
	return token, true
}

// handleHealthz reports process liveness.
func (s *Server) handleHealthz(ctx *Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		return err
	}
}

// handleMetrics serves the Prometheus registry.
func (s *Server) handleMetrics(ctx *Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		s.metrics.Handler().ServeHTTP(w, r)
		return nil
	}
}
