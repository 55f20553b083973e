package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"quicktube/internal/transcript"
)

func newTestServer(t *testing.T, listBody string, tracks map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") == "list" {
			_, _ = w.Write([]byte(listBody))
			return
		}
		body, ok := tracks[q.Get("lang")]
		if !ok {
			// unknown tracks come back as an empty 200 body
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

const listEN = `<transcript_list><track lang_code="en" name=""/></transcript_list>`

const captionsEN = `<transcript>` +
	`<text start="0" dur="1.5">hello there</text>` +
	`<text start="1.5" dur="2">this is a &amp;#39;test&amp;#39;</text>` +
	`</transcript>`

func TestFetchLanguage(t *testing.T) {
	srv := newTestServer(t, listEN, map[string]string{"en": captionsEN})
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	tr, err := c.FetchLanguage(context.Background(), "vid", "en")
	require.NoError(t, err)
	require.Equal(t, "hello there this is a 'test'", tr.Text)
	require.Len(t, tr.Segments, 2)
	require.Equal(t, 1.5, tr.Segments[1].Start)
	require.Equal(t, 2.0, tr.Segments[1].Duration)
}

func TestFetchLanguageDisabled(t *testing.T) {
	srv := newTestServer(t, `<transcript_list></transcript_list>`, nil)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchLanguage(context.Background(), "vid", "en")
	require.ErrorIs(t, err, transcript.ErrDisabled)
}

func TestFetchLanguageEmptyListBody(t *testing.T) {
	srv := newTestServer(t, "", nil)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchLanguage(context.Background(), "vid", "en")
	require.ErrorIs(t, err, transcript.ErrDisabled)
}

func TestFetchLanguageNotFound(t *testing.T) {
	srv := newTestServer(t, listEN, map[string]string{"en": captionsEN})
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchLanguage(context.Background(), "vid", "fr")
	require.ErrorIs(t, err, transcript.ErrNotFound)
}

func TestFetchLanguageEmptyTrack(t *testing.T) {
	srv := newTestServer(t, listEN, map[string]string{"en": `<transcript></transcript>`})
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchLanguage(context.Background(), "vid", "en")
	require.ErrorIs(t, err, transcript.ErrNotFound)
}

func TestFetchLanguageTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchLanguage(context.Background(), "vid", "en")
	require.Error(t, err)
	require.NotErrorIs(t, err, transcript.ErrNotFound)
	require.NotErrorIs(t, err, transcript.ErrDisabled)
}
