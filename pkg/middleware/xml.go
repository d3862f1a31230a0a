package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"mqbroker/internal/constants"
	"mqbroker/pkg/errors"
)

const ErrorCodeHeader = "X-Error-Code"

// Quotes stay literal so reasons such as {'foo'} read as written.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// XMLContentType makes application/xml the response type of every route it
// wraps, including responses without a body.
func XMLContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", constants.ContentTypeXML)
		c.Next()
	}
}

// RespondError writes err as an <Error> document and aborts the chain.
// Errors that are not coded become 500 Internal server error.
func RespondError(c *gin.Context, err error) {
	resp := errors.ToErrorResponse(err)
	status := errors.ToHTTPStatus(err)

	_ = c.Error(err)

	body := constants.XMLDeclaration + "\n<Error>" + textEscaper.Replace(resp.Message) + "</Error>"

	c.Header(ErrorCodeHeader, resp.Code)
	c.Data(status, constants.ContentTypeXML, []byte(body))
	c.Abort()
}

// NoRouteHandler answers unknown paths with "<path> does not exist".
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondError(c, errors.ErrNotFound.WithMessagef("%s does not exist", c.Request.URL.Path))
	}
}

// NoMethodHandler answers a known path requested with the wrong method.
// The engine must have HandleMethodNotAllowed enabled.
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondError(c, errors.ErrMethodNotAllowed.WithMessagef("%s is not allowed", c.Request.Method))
	}
}
