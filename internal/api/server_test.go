package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"logboard/internal/config"
	"logboard/internal/crawlers"
	"logboard/internal/log"
	"logboard/internal/mocks"
	"logboard/internal/models"
	"logboard/internal/store"
)

func init() {
	log.SetOutput(io.Discard)
}

type fixture struct {
	handler http.Handler
	store   *mocks.MockLogStore
	fetcher *mocks.MockFetcher
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	logStore := mocks.NewMockLogStore(ctrl)
	fetcher := mocks.NewMockFetcher(ctrl)

	cfg := &config.Config{Members: []string{"김기래", "alice"}, MaxPages: 10}
	srv := NewServer(cfg, logStore, crawlers.NewCrawlerManager(fetcher, cfg.MaxPages), crawlers.NewMetaExtractor(fetcher))
	srv.now = func() time.Time { return time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC) }

	return &fixture{handler: srv.Routes(), store: logStore, fetcher: fetcher}
}

type response struct {
	Result  string          `json:"result"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (f *fixture) do(t *testing.T, method, target, body string) (int, response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var res response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	}
	return rec.Code, res
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "connected", rec.Body.String())
}

func TestInsertLogValidation(t *testing.T) {
	tests := []struct {
		body    string
		message string
	}{
		{`not json`, "요청 형식이 올바르지 않습니다."},
		{`["name"]`, "요청 형식이 올바르지 않습니다."},
		{`{"name":"alice"}`, "필수 입력값이 누락되었습니다: url"},
		{`{}`, "필수 입력값이 누락되었습니다: name, url"},
		{`{"name":"alice","url":3}`, "url의 타입이 올바르지 않습니다."},
		{`{"name":"  ","url":"https://x"}`, "name은 빈 문자열을 허용하지 않습니다."},
		{`{"name":"bob","url":"https://x"}`, "멤버가 아닙니다."},
	}
	for _, tt := range tests {
		f := newFixture(t)
		code, res := f.do(t, http.MethodPost, "/api/logs", tt.body)
		require.Equal(t, http.StatusBadRequest, code, tt.body)
		require.Equal(t, "fail", res.Result)
		require.Equal(t, tt.message, res.Message)
	}
}

func TestInsertLogStoresMeta(t *testing.T) {
	f := newFixture(t)
	f.fetcher.EXPECT().Get(gomock.Any(), "https://velog.io/@alice/til").Return(&crawlers.Response{
		StatusCode: 200,
		Body:       []byte(`<html><head><meta property="og:title" content="TIL"></head></html>`),
	}, nil)
	f.store.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.LogEntry) (string, error) {
			require.Equal(t, "alice", entry.Name)
			require.Equal(t, "https://velog.io/@alice/til", entry.URL)
			require.False(t, entry.Trash)
			require.Equal(t, "TIL", *entry.MetaInfo.OgTitle)
			require.Nil(t, entry.MetaInfo.OgImage)
			require.Equal(t, 2024, entry.CreatedAt.Year())
			return "65f0c0ffee0000000000beef", nil
		})

	code, res := f.do(t, http.MethodPost, "/api/logs", `{"name":"alice","url":"https://velog.io/@alice/til"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", res.Result)
	require.JSONEq(t, `{"inserted_id":"65f0c0ffee0000000000beef"}`, string(res.Data))
}

func TestInsertLogMetaFailureStoresEmptyMeta(t *testing.T) {
	f := newFixture(t)
	f.fetcher.EXPECT().Get(gomock.Any(), "https://broken.example").Return(nil, errors.New("timeout"))
	f.store.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.LogEntry) (string, error) {
			require.Equal(t, models.MetaInfo{}, entry.MetaInfo)
			return "", errors.New("mongo down")
		})

	code, res := f.do(t, http.MethodPost, "/api/logs", `{"name":"김기래","url":"https://broken.example"}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Log 남기기에 실패했습니다.", res.Message)
}

func TestListLogs(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID()
	f.store.EXPECT().List(gomock.Any(), 1, 10).Return([]models.LogEntry{{
		ID:        id,
		Name:      "alice",
		URL:       "https://velog.io/@alice/til",
		CreatedAt: time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC),
	}}, int64(11), nil)

	code, res := f.do(t, http.MethodGet, "/api/logs?page=abc", "")
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Logs     []map[string]any `json:"logs"`
		Finished bool             `json:"finished"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	require.False(t, data.Finished)
	require.Len(t, data.Logs, 1)
	require.Equal(t, id.Hex(), data.Logs[0]["_id"])
	require.Equal(t, "2024-05-01 12:00:00", data.Logs[0]["created_at"])
}

func TestListLogsLastPage(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().List(gomock.Any(), 2, 10).Return([]models.LogEntry{}, int64(11), nil)

	code, res := f.do(t, http.MethodGet, "/api/logs?page=2", "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"logs":[],"finished":true}`, string(res.Data))
}

func TestListLogsFailure(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().List(gomock.Any(), 1, 10).Return(nil, int64(0), errors.New("mongo down"))

	code, res := f.do(t, http.MethodGet, "/api/logs?page=-3", "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "TIL 목록 조회에 실패했습니다.", res.Message)
}

func TestTrashLog(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Trash(gomock.Any(), "abc").Return(store.ErrNotFound)
	f.store.EXPECT().Trash(gomock.Any(), "def").Return(nil)

	code, _ := f.do(t, http.MethodDelete, "/api/logs/abc", "")
	require.Equal(t, http.StatusNotFound, code)

	code, res := f.do(t, http.MethodDelete, "/api/logs/def", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", res.Result)
}

func TestBlogPosts(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.fetcher.EXPECT().Get(gomock.Any(), "https://velog.io/@alice").
			Return(&crawlers.Response{StatusCode: 200, Body: []byte("<html></html>")}, nil),
		f.fetcher.EXPECT().PostJSON(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&crawlers.Response{StatusCode: 200, Body: []byte(
				`{"data":{"posts":[{"id":"p1","title":"t","short_description":"","thumbnail":"","url_slug":"hello","released_at":"2024-01-01T00:00:00Z"}]}}`,
			)}, nil),
		f.fetcher.EXPECT().PostJSON(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&crawlers.Response{StatusCode: 200, Body: []byte(`{"data":{"posts":[]}}`)}, nil),
	)

	code, res := f.do(t, http.MethodGet, "/api/blogs/posts?url=https://velog.io/@alice", "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{
		"platform": "velog",
		"blog_name": "alice",
		"blog_id": "alice",
		"posts": [{"id":"p1","title":"t","url":"https://velog.io/@alice/hello","created_at":"2024-01-01T00:00:00Z","thumbnail":null,"summary":null}]
	}`, string(res.Data))
}

func TestBlogPostsUnknownPlatform(t *testing.T) {
	f := newFixture(t)
	f.fetcher.EXPECT().Get(gomock.Any(), "https://example.com").
		Return(&crawlers.Response{StatusCode: 200, Body: []byte("<html></html>")}, nil)

	code, res := f.do(t, http.MethodGet, "/api/blogs/posts?url=https://example.com", "")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "fail", res.Result)
	require.Equal(t, "platform not recognized", res.Message)
}

func TestBlogInfoRequiresURL(t *testing.T) {
	f := newFixture(t)
	code, res := f.do(t, http.MethodGet, "/api/blogs/info", "")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "url 파라미터가 필요합니다.", res.Message)
}

func TestBlogInfoTistory(t *testing.T) {
	f := newFixture(t)
	f.fetcher.EXPECT().Get(gomock.Any(), "https://abc.tistory.com").Return(&crawlers.Response{
		StatusCode: 200,
		Body:       []byte(`<script>window.T.config = {"TOP_SSL_URL":"https://www.tistory.com","BLOG":{"id":1,"name":"abc"}};</script>`),
	}, nil)

	code, res := f.do(t, http.MethodGet, "/api/blogs/info?url=https://abc.tistory.com", "")
	require.Equal(t, http.StatusOK, code)

	var info map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &info))
	require.Equal(t, "tistory", info["platform"])
	require.Equal(t, "abc", info["blog_name"])
	require.EqualValues(t, 0, info["page_cursor"])
}

func TestPlatforms(t *testing.T) {
	f := newFixture(t)
	code, res := f.do(t, http.MethodGet, "/api/platforms", "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"platforms":["tistory","velog"]}`, string(res.Data))
}

func TestPreflightAllowsAnyOrigin(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/logs", nil)
	req.Header.Set("Origin", "https://board.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSHeaderOnSimpleRequest(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/platforms", nil)
	req.Header.Set("Origin", "https://board.example")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
