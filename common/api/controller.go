package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const httpStatusCodeInternalError = 600

// Controller handles a request and returns the data to reply with.
type Controller func(c *gin.Context) (interface{}, error)

// Wrap adapts a controller to gin, replying with the {code, message, data} envelope.
func Wrap(controller Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := controller(c)
		if err != nil {
			replyError(c, err)
		} else if result == nil {
			c.JSON(http.StatusOK, ErrNil)
		} else {
			c.JSON(http.StatusOK, ErrNil.WithData(result))
		}
	}
}

func replyError(c *gin.Context, err error) {
	var (
		businessErr   *BusinessError
		validationErr validator.ValidationErrors
		syntaxErr     *json.SyntaxError
	)

	switch {
	case errors.As(err, &businessErr):
		// custom business error
		c.JSON(businessErr.HTTPStatus(), businessErr)
	case errors.As(err, &validationErr):
		// binding error
		c.JSON(http.StatusOK, ErrValidation.WithData(validationErr.Error()))
	case errors.As(err, &syntaxErr):
		// malformed request body
		c.JSON(http.StatusOK, ErrValidation.WithData(syntaxErr.Error()))
	default:
		// internal server error
		logrus.WithError(err).WithField("path", c.FullPath()).Debug("Internal server error")
		c.JSON(httpStatusCodeInternalError, ErrInternal.WithData(err.Error()))
	}
}
