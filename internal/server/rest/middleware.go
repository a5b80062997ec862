package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/gin-gonic/gin"
)

// userIDKey holds the authenticated user id in the gin context.
const userIDKey = "user_id"

const methodOverrideParam = "_method"

// methodOverride lets HTML forms issue PUT and DELETE as POST ?_method=put|delete.
// It runs before routing so the overridden method picks the route.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.URL.Query().Get(methodOverrideParam)); m {
			case http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// accessToken returns the caller's token: the X-AccessToken header first,
// then the signed session cookie. Unreadable cookies count as no token.
func (s *Server) accessToken(c *gin.Context) string {
	if tok := c.GetHeader(common.AccessTokenHeaderName); tok != "" {
		return tok
	}

	raw, err := c.Cookie(s.cookieName)
	if err != nil || raw == "" {
		return ""
	}

	tok, err := s.cookies.Decode(raw)
	if err != nil {
		return ""
	}
	return tok
}

// requireAuth admits requests carrying a live session and stores its user id
// in the context. Browsers are sent to the login page, API clients get 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.sessions.Authenticate(c.Request.Context(), s.accessToken(c))
		if err != nil {
			switch {
			case !errors.Is(err, common.ErrorUnauthorized):
				s.present(c, resultFromError(err))
			case wantsHTML(c):
				c.Redirect(http.StatusFound, loginPath)
			default:
				c.JSON(http.StatusUnauthorized, errorBody{Status: http.StatusUnauthorized, Message: "unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(userIDKey, sess.UserID)
		c.Next()
	}
}

func (s *Server) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, value, maxAge, "/", "", c.Request.TLS != nil, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
}
