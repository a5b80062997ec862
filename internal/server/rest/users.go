package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/services"
	"github.com/gin-gonic/gin"
)

var errHTMLOnly = errors.New("view is only available as HTML")

type userRequest struct {
	Pseudo    string `form:"pseudo" json:"pseudo" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required"`
	FirstName string `form:"firstname" json:"firstname" binding:"required"`
	LastName  string `form:"lastname" json:"lastname" binding:"required"`
	Password  string `form:"password" json:"password" binding:"required"`
}

func (r userRequest) input() services.UserInput {
	return services.UserInput{
		Pseudo:    r.Pseudo,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

type listQuery struct {
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	Order     string `form:"order"`
	Limit     int    `form:"limit" binding:"min=0"`
	Offset    int    `form:"offset" binding:"min=0"`
}

// filter applies order only when reverse is present too; reverse "1" sorts
// descending, "0" ascending, anything else leaves the direction to the store.
func (q listQuery) filter(reverse string, hasReverse bool) (models.UserFilter, error) {
	f := models.UserFilter{
		FirstName: q.FirstName,
		LastName:  q.LastName,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}

	if q.Order == "" {
		return f, nil
	}
	if !models.SortField(q.Order).Valid() {
		return f, common.ErrorValidation
	}
	if !hasReverse {
		return f, nil
	}

	f.Order = models.SortField(q.Order)
	switch reverse {
	case "1":
		f.Direction = models.SortDesc
	case "0":
		f.Direction = models.SortAsc
	}
	return f, nil
}

func (s *Server) listUsers(c *gin.Context) Result {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return invalid(err)
	}

	reverse, hasReverse := c.GetQuery("reverse")
	filter, err := q.filter(reverse, hasReverse)
	if err != nil {
		return invalid(err)
	}

	list, err := s.users.List(c.Request.Context(), filter)
	if err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     list,
		Template: "users_index.html",
		View:     gin.H{"Title": "Users", "Users": list},
	}
}

func (s *Server) getUser(c *gin.Context) Result {
	user, err := s.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     user,
		Template: "users_show.html",
		View:     gin.H{"Title": user.Pseudo, "User": user},
	}
}

func (s *Server) createUser(c *gin.Context) Result {
	var req userRequest
	if err := c.ShouldBind(&req); err != nil {
		return invalid(err)
	}

	user, err := s.users.Create(c.Request.Context(), req.input())
	if err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusCreated,
		JSON:     user,
		Redirect: usersPath,
	}
}

func (s *Server) updateUser(c *gin.Context) Result {
	var req userRequest
	if err := c.ShouldBind(&req); err != nil {
		return invalid(err)
	}

	if err := s.users.Update(c.Request.Context(), c.Param("id"), req.input()); err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     gin.H{"message": "success"},
		Redirect: usersPath,
	}
}

func (s *Server) deleteUser(c *gin.Context) Result {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		JSON:     gin.H{"message": "success"},
		Redirect: usersPath,
	}
}

func (s *Server) addUserForm(c *gin.Context) Result {
	if !wantsHTML(c) {
		return invalid(errHTMLOnly)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		Template: "users_edit.html",
		View:     gin.H{"Title": "Add user", "User": &models.User{}, "Action": usersPath},
	}
}

func (s *Server) editUserForm(c *gin.Context) Result {
	if !wantsHTML(c) {
		return invalid(errHTMLOnly)
	}

	id := c.Param("id")
	user, err := s.users.Get(c.Request.Context(), id)
	if err != nil {
		return resultFromError(err)
	}

	return Result{
		Outcome:  Success,
		Status:   http.StatusOK,
		Template: "users_edit.html",
		View: gin.H{
			"Title":  "Edit user",
			"User":   user,
			"Action": usersPath + "/" + id + "?" + methodOverrideParam + "=put",
		},
	}
}
