package param

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
	"github.com/twitchtv/twirp"
)

var decoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.SetAliasTag("json")
	return d
}

// Binding bind request params into v and validate. Query params feed
// GET style requests, a JSON body feeds the rest.
func Binding(r *http.Request, v interface{}) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return twirp.InvalidArgumentError("query", err.Error())
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
			return twirp.InvalidArgumentError("body", err.Error())
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return twirp.InvalidArgumentError("params", err.Error())
	}

	return nil
}
