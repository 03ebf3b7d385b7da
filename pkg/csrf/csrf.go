package csrf

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cookieName = "csrf_token"
	// FormField is the hidden form field carrying the token back on POST.
	FormField = "_csrf"

	cookieMaxAge = 3600
)

// Token returns the session's anti-forgery token, issuing a new one and
// setting the cookie if the session does not have one yet. Call it from
// the GET handler that renders a state-changing form.
func Token(c *gin.Context) string {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		token = uuid.NewString()
		c.SetCookie(cookieName, token, cookieMaxAge, "/", "", false, true)
	}
	return token
}

// Middleware rejects POST requests whose form token does not match the
// session cookie, before any handler runs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie == "" || c.PostForm(FormField) != cookie {
			c.HTML(http.StatusForbidden, "error.tmpl", gin.H{
				"title":   "Error",
				"message": "Invalid CSRF token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
