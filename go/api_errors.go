package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogports "github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/storefront-cart/internal/shared/errors"
)

var problems = apierrors.NewResponder("", mapCatalogError)

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrInvalidQuery):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondCatalogError reports anything the catalog did not classify as an upstream failure.
func respondCatalogError(c *gin.Context, err error) {
	if _, ok := mapCatalogError(err); ok {
		problems.RespondError(c, err)
		return
	}
	problems.Respond(c, apierrors.ErrBadGateway.WithDetail(err.Error()))
}

func respondBadRequest(c *gin.Context, err error) {
	problems.BadRequest(c, err.Error())
}
