package response

import (
	"booktable/shared/constant"
	"booktable/shared/failure"
	"booktable/shared/logger"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON writes payload as the whole response body.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, jsonPayload)
}

// WithError maps err onto its failure code. Client errors expose only the
// failure message, never the wrap chain. Server-side errors are logged with
// their stack and replaced by an opaque message.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) || !failure.IsClientError(fail) {
		logger.ErrorWithStack(err)
		response(writer, failure.GetCode(err), Error{Error: constant.ResponseErrorInternal})

		return
	}

	response(writer, fail.Code, Error{Error: fail.Message})
}

// WithPNG sends raw image bytes.
func WithPNG(writer http.ResponseWriter, image []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePNG)
	writer.Header().Set("Content-Length", strconv.Itoa(len(image)))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(image); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Error: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
