package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func respondWith(t *testing.T, r *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	r.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return w, problem
}

func TestRespondError_UsesMappers(t *testing.T) {
	r := NewResponder("https://storefront.example", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errUpstream) {
			return ErrBadGateway.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	w, problem := respondWith(t, r, errUpstream)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, "https://storefront.example/problems/bad-gateway", problem.Type)
	assert.Equal(t, "/v1/cart", problem.Instance)
}

func TestRespondError_FallsBackToInternal(t *testing.T) {
	w, problem := respondWith(t, NewResponder(""), errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", problem.Detail)
}

func TestRespondError_PassesProblemThrough(t *testing.T) {
	w, problem := respondWith(t, NewResponder(""), NewNotFoundProblem("product", 9))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product", problem.Extensions["resourceType"])
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(NewNotFoundProblem("product", 9)))
}

func TestWithExtension_DoesNotAlias(t *testing.T) {
	base := ErrValidation.WithExtension("a", 1)
	_ = base.WithExtension("b", 2)
	assert.Len(t, base.Extensions, 1)
}
