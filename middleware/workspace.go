package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/services"
)

const (
	WorkspaceCookie = "sf_sid"
	workspaceKey    = "workspace"
	cookieMaxAge    = 60 * 60 * 24 * 30
)

// WorkspaceMiddleware binds each visitor, identified by a cookie, to its
// own workspace of persisted state.
func WorkspaceMiddleware(registry *services.WorkspaceRegistry, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(WorkspaceCookie)
		if _, perr := uuid.Parse(sid); err != nil || perr != nil {
			sid = uuid.NewString()
		}
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     WorkspaceCookie,
			Value:    sid,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})

		c.Set(workspaceKey, registry.Get(c.Request.Context(), sid))
		c.Next()
	}
}

func GetWorkspace(c *gin.Context) *services.Workspace {
	ws, _ := c.MustGet(workspaceKey).(*services.Workspace)
	return ws
}
