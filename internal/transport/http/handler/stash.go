package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkstash/internal/app"
	"linkstash/internal/session"
)

// StashHandler covers the dashboard and the stash/delete actions. Every
// route here requires an identified session; anonymous requests bounce to
// the entry view.
type StashHandler struct {
	stashService *app.StashService
}

func NewStashHandler(stashService *app.StashService) *StashHandler {
	return &StashHandler{stashService: stashService}
}

func (h *StashHandler) Dashboard(c *gin.Context) {
	identity := session.CurrentIdentity(c)
	if identity == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	stashes, err := h.stashService.ListStashes(identity.UserID)
	if err != nil {
		// Degrade to an empty dashboard rather than an error page.
		log.Printf("list stashes failed: %v", err)
		stashes = nil
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"UserName": identity.UserName,
		"Stashes":  stashes,
		"Flashes":  session.TakeFlashes(c),
	})
}

// StashURL runs the synchronous fetch -> summarize -> save pipeline. The
// request blocks for the full duration of the outbound calls.
func (h *StashHandler) StashURL(c *gin.Context) {
	identity := session.CurrentIdentity(c)
	if identity == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	urlLink := c.PostForm("url_link")
	if urlLink == "" {
		session.AddFlash(c, "warning", "Please enter a URL.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	if _, err := h.stashService.StashURL(c.Request.Context(), identity.UserID, urlLink); err != nil {
		log.Printf("stash url failed: %v", err)
		session.AddFlash(c, "danger", "Database error.")
	} else {
		session.AddFlash(c, "success", "URL Stashed and Summarized!")
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteStash deletes by url_id alone. Any identified session that knows an
// id can delete it; ownership is not checked.
func (h *StashHandler) DeleteStash(c *gin.Context) {
	if session.CurrentIdentity(c) == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.stashService.DeleteStash(c.Request.Context(), c.Param("url_id")); err != nil {
		log.Printf("delete stash failed: %v", err)
		session.AddFlash(c, "danger", "Error deleting stash.")
	} else {
		session.AddFlash(c, "success", "Stash deleted.")
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
