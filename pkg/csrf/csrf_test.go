package csrf

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenIssuesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/book/add", nil)

	token := Token(c)

	assert.NotEmpty(t, token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "csrf_token="+token)
}

func TestTokenReusesExistingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/book/add", nil)
	c.Request.AddCookie(&http.Cookie{Name: "csrf_token", Value: "existing-token"})

	token := Token(c)

	assert.Equal(t, "existing-token", token)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func postContext(w *httptest.ResponseRecorder, form url.Values) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	r.LoadHTMLGlob("../../templates/*.tmpl")
	c.Request = httptest.NewRequest("POST", "/book/add", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c, r
}

func TestMiddlewareAllowsMatchingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	form := url.Values{}
	form.Set(FormField, "session-token")

	w := httptest.NewRecorder()
	c, _ := postContext(w, form)
	c.Request.AddCookie(&http.Cookie{Name: "csrf_token", Value: "session-token"})

	Middleware()(c)

	assert.False(t, c.IsAborted())
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := postContext(w, url.Values{})
	c.Request.AddCookie(&http.Cookie{Name: "csrf_token", Value: "session-token"})

	Middleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddlewareRejectsMismatchedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	form := url.Values{}
	form.Set(FormField, "forged-token")

	w := httptest.NewRecorder()
	c, _ := postContext(w, form)
	c.Request.AddCookie(&http.Cookie{Name: "csrf_token", Value: "session-token"})

	Middleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddlewareRejectsMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	form := url.Values{}
	form.Set(FormField, "some-token")

	w := httptest.NewRecorder()
	c, _ := postContext(w, form)

	Middleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddlewareIgnoresGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/book/add", nil)

	Middleware()(c)

	assert.False(t, c.IsAborted())
}
