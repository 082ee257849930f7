package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/pkg/types"
)

// ActorFromContext rebuilds the acting user from the JWT claims stored by the
// auth middleware.
var ActorFromContext = func(c *gin.Context) (user.User, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return user.User{}, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return user.User{}, errors.New("invalid user claims type")
	}

	return user.User{
		UID:      claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
