package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railsgen/internal/httpclient"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Empty(t, r.Header.Values("X-Empty"))
		_, _ = w.Write([]byte("openapi: 3.0.3\n"))
	}))
	defer srv.Close()

	body, err := httpclient.Fetch(context.Background(), srv.URL+"/openapi.yaml", map[string]string{
		"Authorization": "Bearer s3cret",
		"X-Empty":       " ",
	})
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.3\n", string(body))

	_, err = httpclient.Fetch(context.Background(), srv.URL+"/openapi.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestIsRemote(t *testing.T) {
	assert.True(t, httpclient.IsRemote("https://petstore.example/openapi.json"))
	assert.True(t, httpclient.IsRemote("http://localhost:8000/openapi.json"))
	assert.False(t, httpclient.IsRemote("./testdata/petstore.yaml"))
}

func TestFormatBody(t *testing.T) {
	out := httpclient.FormatBody("application/json", []byte(`{"b":1,"a":"x","c":[true,null]}`))
	assert.Less(t, strings.Index(out, `"a"`), strings.Index(out, `"b"`), "keys are sorted")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "null")

	assert.Equal(t, "<pet/>", httpclient.FormatBody("application/xml", []byte("<pet/>")))
	assert.Equal(t, "{broken", httpclient.FormatBody("application/json", []byte("{broken")))
}
