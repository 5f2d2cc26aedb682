package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkstash/internal/app"
	"linkstash/internal/session"
)

// PageHandler covers the entry view and the login/logout flow.
type PageHandler struct {
	accountService *app.AccountService
}

func NewPageHandler(accountService *app.AccountService) *PageHandler {
	return &PageHandler{accountService: accountService}
}

// Index shows the login form, or sends an already-identified session
// straight to the dashboard.
func (h *PageHandler) Index(c *gin.Context) {
	if session.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": session.TakeFlashes(c),
	})
}

// Login resolves the submitted name to a user and puts the identity into
// the session. The name is the only credential.
func (h *PageHandler) Login(c *gin.Context) {
	user, err := h.accountService.Login(c.PostForm("user_name"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyName):
			session.AddFlash(c, "danger", "Please enter a valid name.")
		default:
			log.Printf("login failed: %v", err)
			session.AddFlash(c, "danger", "Database error creating user.")
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	session.SetIdentity(c, session.Identity{
		UserID:   user.UserID,
		UserName: user.UserName,
	})
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Logout(c *gin.Context) {
	session.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
