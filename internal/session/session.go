package session

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "linkstash_session"

type current struct {
	token      string
	cookieName string
	state      *State
	cleared    bool
}

// Middleware attaches the session to the request. The cookie carries only
// an opaque token; all state lives server-side in the Store. State is
// loaded before the handlers run and persisted after.
func Middleware(store Store, cookieName string, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetCookie(cookieName, token, maxAge, "/", "", false, true)
		}

		state, err := store.Get(c.Request.Context(), token)
		if err != nil {
			log.Printf("load session failed: %v", err)
		}
		if state == nil {
			state = &State{}
		}

		cur := &current{token: token, cookieName: cookieName, state: state}
		c.Set(contextKey, cur)
		c.Next()

		if cur.cleared {
			if err := store.Delete(c.Request.Context(), token); err != nil {
				log.Printf("delete session failed: %v", err)
			}
			return
		}
		if err := store.Save(c.Request.Context(), token, cur.state); err != nil {
			log.Printf("save session failed: %v", err)
		}
	}
}

func fromContext(c *gin.Context) *current {
	if v, ok := c.Get(contextKey); ok {
		if cur, ok := v.(*current); ok {
			return cur
		}
	}
	return nil
}

// CurrentIdentity returns the logged-in identity, or nil for an anonymous
// session.
func CurrentIdentity(c *gin.Context) *Identity {
	cur := fromContext(c)
	if cur == nil {
		return nil
	}
	return cur.state.Identity
}

func SetIdentity(c *gin.Context, identity Identity) {
	if cur := fromContext(c); cur != nil {
		cur.state.Identity = &identity
	}
}

func AddFlash(c *gin.Context, level, message string) {
	if cur := fromContext(c); cur != nil {
		cur.state.Flashes = append(cur.state.Flashes, Flash{Level: level, Message: message})
	}
}

// TakeFlashes drains the pending flashes; each notice renders exactly once.
func TakeFlashes(c *gin.Context) []Flash {
	cur := fromContext(c)
	if cur == nil {
		return nil
	}
	flashes := cur.state.Flashes
	cur.state.Flashes = nil
	return flashes
}

// Clear logs the session out: server-side state is deleted and the cookie
// expired.
func Clear(c *gin.Context) {
	cur := fromContext(c)
	if cur == nil {
		return
	}
	cur.cleared = true
	cur.state = &State{}
	c.SetCookie(cur.cookieName, "", -1, "/", "", false, true)
}
