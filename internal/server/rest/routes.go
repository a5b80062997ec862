package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	loginPath = "/sessions/"
	usersPath = "/users"

	greeting = "Welcome to the user accounts API!"
)

// routes classifies every route at registration: the root and the session
// endpoints are public, everything under /users goes through requireAuth.
func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(parseTemplates())

	r.GET("/", s.handle(s.index))
	r.GET(loginPath, s.handle(s.loginForm))
	r.POST(loginPath, s.handle(s.login))
	r.DELETE(loginPath, s.handle(s.logout))

	users := r.Group(usersPath, s.requireAuth())
	users.GET("", s.handle(s.listUsers))
	users.POST("", s.handle(s.createUser))
	users.GET("/add", s.handle(s.addUserForm))
	users.GET("/:id", s.handle(s.getUser))
	users.GET("/:id/edit", s.handle(s.editUserForm))
	users.PUT("/:id", s.handle(s.updateUser))
	users.DELETE("/:id", s.handle(s.deleteUser))

	r.NoRoute(s.notImplemented)

	return r
}

func (s *Server) index(c *gin.Context) Result {
	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     gin.H{"message": greeting},
		Template: "index.html",
		View:     gin.H{"Title": "Home", "Message": greeting},
	}
}

func (s *Server) notImplemented(c *gin.Context) {
	const msg = "Not implemented"
	if wantsHTML(c) {
		c.HTML(http.StatusNotImplemented, "message.html", gin.H{"Title": msg, "Message": msg})
		return
	}
	c.JSON(http.StatusNotImplemented, errorBody{Status: http.StatusNotImplemented, Message: msg})
}
