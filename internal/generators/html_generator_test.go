package generators

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"logboard/internal/models"
)

func TestGenerateHTML(t *testing.T) {
	thumb := "https://img.example/1.png"
	summary := "요약 <b>굵게</b>"
	info := models.SiteInfo{
		Status:   models.StatusSuccess,
		Platform: models.PlatformTistory,
		BlogName: "abc",
		Posts: []models.Post{
			{ExternalID: "1", Title: "작년 글", URL: "https://abc.tistory.com/1", CreatedAt: "2023-12-31"},
			{ExternalID: "2", Title: "올해 글", URL: "https://abc.tistory.com/2", CreatedAt: "2024-01-02", ThumbnailURL: &thumb, Summary: &summary},
			{ExternalID: "3", Title: "날짜 없음", URL: "https://abc.tistory.com/3", CreatedAt: "?"},
		},
	}

	g := NewHTMLGenerator()
	g.now = func() time.Time { return time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, g.GenerateHTML(info, &buf))
	html := buf.String()

	require.Contains(t, html, "tistory · 총 3개 글 · 2024-01-03 09:00:00 기준")
	require.Contains(t, html, `<img src="https://img.example/1.png"`)
	require.Contains(t, html, "요약 &lt;b&gt;굵게&lt;/b&gt;")
	require.Less(t, strings.Index(html, "<h2>2024</h2>"), strings.Index(html, "<h2>2023</h2>"))
	require.Less(t, strings.Index(html, "<h2>2023</h2>"), strings.Index(html, "<h2>기타</h2>"))
	require.Len(t, info.Posts, 3)
	require.Equal(t, "1", info.Posts[0].ExternalID, "input order must be preserved")
}
