package response

import "net/http"

// 业务错误码直接基于 HTTP 语义
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeRateLimited  = 429
	CodeServerError  = 500
)

var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeRateLimited:  "Too Many Requests",
	CodeServerError:  "Internal Server Error",
}

// HTTPStatus maps a business code to the wire status. Unknown codes fall
// back to 500 so a bad constant never produces a 200.
func HTTPStatus(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeBadRequest, CodeUnauthorized, CodeForbidden,
		CodeNotFound, CodeRateLimited:
		return code
	default:
		return http.StatusInternalServerError
	}
}
