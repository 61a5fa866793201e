package resthttp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/twitchtv/twirp"
)

const headerKeyRequestID = "X-Request-Id"

var runOnce sync.Once
var restyClient *resty.Client

// Client shared resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Execute do network request
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) error {
	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return err
	}

	return ParseResponse(r, resp)
}

// ParseResponse decode a response body, turning any non-2xx status
// into a twirp coded error carrying the server's message when present.
// A response without a {code, msg} body yields an empty message;
// callers fall back to their own wording.
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		code := codeFromStatus(r.StatusCode())

		var body struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		_ = json.Unmarshal(r.Body(), &body)

		return twirp.NewError(code, body.Msg)
	}

	if obj == nil {
		return nil
	}

	return json.Unmarshal(r.Body(), obj)
}

func codeFromStatus(status int) twirp.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return twirp.InvalidArgument
	case http.StatusUnauthorized:
		return twirp.Unauthenticated
	case http.StatusForbidden:
		return twirp.PermissionDenied
	case http.StatusNotFound:
		return twirp.NotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		return twirp.FailedPrecondition
	case http.StatusTooManyRequests:
		return twirp.ResourceExhausted
	default:
		return twirp.Internal
	}
}
