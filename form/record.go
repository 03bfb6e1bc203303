package form

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-formcheck/validator"
	"github.com/pkg/errors"
)

// MaxMultipartMemory is passed to http.Request.ParseMultipartForm.
const MaxMultipartMemory = 32 << 20

// RecordFromRequest builds a record from the query string, path params,
// urlencoded or multipart form values, and a JSON object body,
// in that order. Later sources replace earlier ones key by key.
//
// A parameter with a single value becomes a string, and one with
// several values becomes a []string. JSON numbers are json.Number.
func RecordFromRequest(c echo.Context) (validator.Record, error) {
	rec := validator.Record{}
	addValues(rec, c.QueryParams())
	names := c.ParamNames()
	values := c.ParamValues()
	for i, name := range names {
		if i < len(values) {
			rec[name] = values[i]
		}
	}
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		if err := req.ParseMultipartForm(MaxMultipartMemory); err != nil {
			return nil, errors.Wrap(err, "parsing multipart form")
		}
		addValues(rec, req.PostForm)
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm):
		if err := req.ParseForm(); err != nil {
			return nil, errors.Wrap(err, "parsing form")
		}
		addValues(rec, req.PostForm)
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		if err := addJSON(rec, req); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func addValues(rec validator.Record, values url.Values) {
	for k, vs := range values {
		switch len(vs) {
		case 0:
			continue
		case 1:
			rec[k] = vs[0]
		default:
			rec[k] = append([]string(nil), vs...)
		}
	}
}

func addJSON(rec validator.Record, req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(req.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "decoding json body")
	}
	for k, v := range body {
		rec[k] = v
	}
	return nil
}
