package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	UserID   string `form:"userId" json:"userId" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Server) loginForm(c *gin.Context) Result {
	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     gin.H{"message": "login required"},
		Template: "sessions_login.html",
		View:     gin.H{"Title": "Login", "Action": loginPath},
	}
}

// login opens a session. Browsers receive the token in the signed cookie,
// API clients in the body.
func (s *Server) login(c *gin.Context) Result {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		return invalid(err)
	}

	sess, err := s.sessions.Login(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		return resultFromError(err)
	}

	if wantsHTML(c) {
		validity := s.sessions.Validity()
		value, err := s.cookies.Encode(sess.AccessToken, validity)
		if err != nil {
			return Result{Outcome: StorageFailed, Err: fmt.Errorf("%w: signing cookie: %v", common.ErrorInternal, err)}
		}
		s.setSessionCookie(c, value, int(validity/time.Second))
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     loginResponse{AccessToken: sess.AccessToken, ExpiresAt: sess.ExpiresAt},
		Template: "sessions_created.html",
		View:     gin.H{"Title": "Logged in", "UserID": sess.UserID, "ExpiresAt": sess.ExpiresAt},
	}
}

// logout revokes the caller's current session, whichever transport carried
// the token, and always confirms.
func (s *Server) logout(c *gin.Context) Result {
	token := s.accessToken(c)
	s.clearSessionCookie(c)

	if _, err := s.sessions.Logout(c.Request.Context(), token); err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     gin.H{"message": "session deleted"},
		Template: "message.html",
		View:     gin.H{"Title": "Logout", "Message": "Session deleted"},
	}
}
