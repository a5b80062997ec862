package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/gin-gonic/gin"
)

// Outcome classifies what a handler produced.
type Outcome int

const (
	Success Outcome = iota
	NotFound
	ValidationFailed
	AuthFailed
	StorageFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotFound:
		return "not found"
	case ValidationFailed:
		return "bad request"
	case AuthFailed:
		return "unauthorized"
	case StorageFailed:
		return "internal server error"
	}
	return "unknown"
}

// HTTPStatus is the status of failed outcomes. Success carries its own.
func (o Outcome) HTTPStatus() int {
	switch o {
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusBadRequest
	case AuthFailed:
		return http.StatusUnauthorized
	case Success:
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// Result is what handlers return; present renders it for the negotiated
// representation. JSON is the machine payload, Template and View the HTML
// page, and Redirect, when set, replaces the page for browsers.
type Result struct {
	Outcome  Outcome
	Status   int
	JSON     any
	Template string
	View     any
	Redirect string
	Err      error
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func invalid(err error) Result {
	return Result{Outcome: ValidationFailed, Err: err}
}

// resultFromError maps service errors to outcomes. It is the only place
// where sentinels turn into client-visible categories.
func resultFromError(err error) Result {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return Result{Outcome: NotFound, Err: err}
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		return Result{Outcome: ValidationFailed, Err: err}
	case errors.Is(err, common.ErrorUnauthorized):
		return Result{Outcome: AuthFailed, Err: err}
	default:
		return Result{Outcome: StorageFailed, Err: err}
	}
}

// wantsHTML prefers HTML when the client accepts it or anything at all.
func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEHTML
}

func (s *Server) handle(h func(*gin.Context) Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.present(c, h(c))
	}
}

// present writes r. Failure details are logged, clients only see the
// outcome's generic message.
func (s *Server) present(c *gin.Context, r Result) {
	html := wantsHTML(c)

	if r.Outcome == Success {
		switch {
		case html && r.Redirect != "":
			c.Redirect(http.StatusFound, r.Redirect)
		case html:
			c.HTML(r.Status, r.Template, r.View)
		default:
			c.JSON(r.Status, r.JSON)
		}
		return
	}

	ctx := c.Request.Context()
	if r.Outcome == StorageFailed {
		s.logger.Error(ctx, "request failed", "path", c.Request.URL.Path, "error", r.Err)
	} else if r.Err != nil {
		s.logger.Debug(ctx, "request rejected", "path", c.Request.URL.Path, "outcome", r.Outcome.String(), "error", r.Err)
	}

	status, msg := r.Outcome.HTTPStatus(), r.Outcome.String()
	if html {
		c.HTML(status, "message.html", gin.H{"Title": http.StatusText(status), "Message": msg})
		return
	}
	c.JSON(status, errorBody{Status: status, Message: msg})
}
