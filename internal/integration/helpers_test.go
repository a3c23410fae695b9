package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func resetDatabase(t testing.TB, app *TestApp) {
	_, err := app.DB.Exec(context.Background(), "TRUNCATE schedules, films CASCADE")
	require.NoError(t, err)

	require.NoError(t, app.Redis.FlushAll(context.Background()).Err())
}

func seedDatabase(t testing.TB, app *TestApp) {
	resetDatabase(t, app)

	_, err := app.DB.Exec(context.Background(), `
		INSERT INTO films (id, rating, director, tags, title, about, description, image, cover)
		VALUES
			($1, 2.9, $2, $3, $4, 'About', 'Description', '/bg1s.jpg', '/bg1c.jpg'),
			($5, 8.1, 'Another Director', '{}', 'Another Film', 'About', 'Description', '/bg2s.jpg', '/bg2c.jpg')`,
		TestFilmID, TestFilmDirector, TestFilmTags, TestFilmTitle, TestOtherFilmID,
	)
	require.NoError(t, err)

	_, err = app.DB.Exec(context.Background(), `
		INSERT INTO schedules (id, film_id, daytime, hall, "rows", seats, price, taken)
		VALUES
			($1, $2, $3, 0, 5, 10, 350, $4),
			($5, $2, $6, 1, 5, 10, 350, NULL)`,
		TestSessionID, TestFilmID, TestSessionDaytime, []string{"1:1", "1:2"},
		TestLaterSessionID, TestLaterSessionDaytime,
	)
	require.NoError(t, err)
}

func getTaken(t testing.TB, app *TestApp, sessionID string) []string {
	var taken []string
	err := app.DB.QueryRow(context.Background(),
		"SELECT COALESCE(taken, '{}') FROM schedules WHERE id = $1", sessionID).Scan(&taken)
	require.NoError(t, err)

	return taken
}
