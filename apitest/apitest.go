// Package apitest builds requests for testing any HTTP API (not just Echo).
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

type RequestOption func(*http.Request)

func JsonReq() RequestOption {
	return SetReqHeader("Content-Type", "application/json")
}

func SetReqHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func SetQueryParam(key string, value any) RequestOption {
	return SetQueryParams(map[string]any{key: value})
}

// SetQueryParams adds values to the query string.
// A []string value adds the key once per element.
func SetQueryParams(values map[string]any) RequestOption {
	return func(r *http.Request) {
		query := r.URL.Query()
		for k, v := range values {
			if many, ok := v.([]string); ok {
				for _, s := range many {
					query.Add(k, s)
				}
				continue
			}
			query.Add(k, fmt.Sprintf("%v", v))
		}
		r.URL.RawQuery = query.Encode()
	}
}

func NewRequest(method, url string, body []byte, opts ...RequestOption) *http.Request {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	must(err)
	for _, o := range opts {
		o(req)
	}
	return req
}

func GetRequest(url string, opts ...RequestOption) *http.Request {
	return NewRequest(http.MethodGet, url, nil, opts...)
}

// PostJSON posts o marshaled as JSON.
func PostJSON(url string, o any, opts ...RequestOption) *http.Request {
	return NewRequest(http.MethodPost, url, MustMarshal(o), append([]RequestOption{JsonReq()}, opts...)...)
}

// PostForm posts values as an urlencoded form.
func PostForm(target string, values url.Values, opts ...RequestOption) *http.Request {
	opts = append([]RequestOption{SetReqHeader("Content-Type", "application/x-www-form-urlencoded")}, opts...)
	return NewRequest(http.MethodPost, target, []byte(values.Encode()), opts...)
}

// PostMultipart posts values as a multipart form.
func PostMultipart(target string, values url.Values, opts ...RequestOption) *http.Request {
	buf := bytes.NewBuffer(nil)
	w := multipart.NewWriter(buf)
	for k, vs := range values {
		for _, v := range vs {
			must(w.WriteField(k, v))
		}
	}
	must(w.Close())
	opts = append([]RequestOption{SetReqHeader("Content-Type", w.FormDataContentType())}, opts...)
	return NewRequest(http.MethodPost, target, buf.Bytes(), opts...)
}

func MustMarshal(o any) []byte {
	b, err := json.MarshalIndent(o, "", "  ")
	must(err)
	return b
}

func MustUnmarshal(s string) any {
	var out any
	err := json.Unmarshal([]byte(s), &out)
	must(err)
	return out
}

func MustUnmarshalFrom(r io.Reader) any {
	var out any
	err := json.NewDecoder(r).Decode(&out)
	must(err)
	return out
}

func must(e error) {
	if e != nil {
		panic(e)
	}
}
