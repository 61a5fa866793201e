package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"steward/core"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write an error as a {code, msg} envelope, mapping twirp error
// codes onto HTTP statuses
func Error(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errCode := -1
	msg := err.Error()

	var terr twirp.Error
	if errors.As(err, &terr) {
		statusCode = twirp.ServerHTTPStatusFromErrorCode(terr.Code())
		msg = terr.Msg()
		if c, err := strconv.Atoi(terr.Meta("code")); err == nil {
			errCode = c
		}
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		errCode = int(code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	if err := enc.Encode(H{"code": errCode, "msg": msg}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// NotFound not found error
func NotFound(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
