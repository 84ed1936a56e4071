package htb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctfwatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) domain.EventFeed {
	return NewClient(nil, baseURL, "test-agent", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_List(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`[
			{"id": 42, "slug": "cyber-apocalypse", "name": "Cyber Apocalypse"},
			{"id": 43, "slug": "uni-quals"}
		]`))
	})

	got, err := newTestClient(srv.URL).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.EventSummary{
		{ID: "42", Slug: "cyber-apocalypse"},
		{ID: "43", Slug: "uni-quals"},
	}, got)
}

func TestClient_Detail(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/cyber-apocalypse", r.URL.Path)
		w.Write([]byte(`{
			"id": 42,
			"slug": "cyber-apocalypse",
			"name": "Cyber Apocalypse",
			"org_name": "HackTheBox",
			"starts_at": "2025-03-21T13:00:00.000000Z",
			"ends_at": "2025-03-26 13:00:00",
			"description": "token: AB12CD9",
			"hasCode": true,
			"banner": "/storage/banner.png"
		}`))
	})

	got, err := newTestClient(srv.URL).Detail(context.Background(), "cyber-apocalypse")
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "HackTheBox", got.Organizer)
	assert.Equal(t, domain.AccessRestricted, got.Access)
	assert.True(t, got.StartsAt.Equal(time.Date(2025, 3, 21, 13, 0, 0, 0, time.UTC)))
	assert.True(t, got.EndsAt.Equal(time.Date(2025, 3, 26, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "https://ctf.hackthebox.com/storage/banner.png", got.BannerURL)
	assert.Equal(t, "token: AB12CD9", got.TextFields()[0])
}

func TestClient_DetailAccessFlagTriState(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.AccessFlag
	}{
		{"hasCode true", `{"slug": "x", "hasCode": true}`, domain.AccessRestricted},
		{"hasCode false", `{"slug": "x", "hasCode": false}`, domain.AccessOpen},
		{"hasCode null", `{"slug": "x", "hasCode": null}`, domain.AccessUnknown},
		{"hasCode absent", `{"slug": "x"}`, domain.AccessUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			got, err := newTestClient(srv.URL).Detail(context.Background(), "x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Access)
		})
	}
}

func TestClient_DetailFallsBackToRequestedSlug(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 7}`))
	})
	got, err := newTestClient(srv.URL).Detail(context.Background(), "mystery-ctf")
	require.NoError(t, err)
	assert.Equal(t, "mystery-ctf", got.Slug)
}

func TestClient_UnparsableTimesMapToZero(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slug": "x", "starts_at": "soon(tm)"}`))
	})
	got, err := newTestClient(srv.URL).Detail(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, got.StartsAt.IsZero())
}

func TestClient_ErrorsAreFetchErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := newTestClient(srv.URL).List(context.Background())
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "list", fetchErr.Op)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not": "a list"`))
		})
		_, err := newTestClient(srv.URL).List(context.Background())
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()
		_, err := newTestClient(srv.URL).Detail(context.Background(), "x")
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "detail", fetchErr.Op)
	})
}

func TestClient_BearerTokenAttached(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer some-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})
	client := NewClient(nil, srv.URL, "test-agent", "some-token", slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.List(context.Background())
	require.NoError(t, err)
}

func TestBannerURLNormalization(t *testing.T) {
	tests := []struct {
		name string
		dto  eventDTO
		want string
	}{
		{"absolute url kept", eventDTO{Banner: "https://cdn.example.com/b.png"}, "https://cdn.example.com/b.png"},
		{"scheme-relative", eventDTO{Logo: "//cdn.example.com/l.png"}, "https://cdn.example.com/l.png"},
		{"root-relative", eventDTO{Avatar: "/storage/a.png"}, "https://ctf.hackthebox.com/storage/a.png"},
		{"preference order", eventDTO{Banner: "/b.png", Image: "/i.png"}, "https://ctf.hackthebox.com/b.png"},
		{"blank fields skipped", eventDTO{Banner: "  ", Image: "/i.png"}, "https://ctf.hackthebox.com/i.png"},
		{"nothing usable", eventDTO{Banner: "not-a-url"}, ""},
		{"all empty", eventDTO{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dto.bannerURL())
		})
	}
}
