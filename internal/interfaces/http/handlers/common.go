// Package handlers contains the HTTP request handlers for the scheduling
// API.
package handlers

import (
	goerrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an application error onto its HTTP status and body.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	body := errorResponse{
		Code:    code.String(),
		Message: err.Error(),
	}
	var ae *errors.AppError
	if goerrors.As(err, &ae) {
		body.Message = ae.Message
		body.Detail = ae.Detail
	}
	c.JSON(code.HTTPStatus(), body)
}
