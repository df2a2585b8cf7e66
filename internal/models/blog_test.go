package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlatformString(t *testing.T) {
	require.Equal(t, "tistory", PlatformTistory.String())
	require.Equal(t, "velog", PlatformVelog.String())
	require.Equal(t, "unknown", PlatformUnknown.String())
	require.Equal(t, "Platform(7)", Platform(7).String())
}

func TestSiteInfoJSONEncodesCursorByKind(t *testing.T) {
	tistory := SiteInfo{Status: StatusSuccess, Platform: PlatformTistory, Cursor: PageCursor(3)}
	b, err := json.Marshal(tistory)
	require.NoError(t, err)
	require.Contains(t, string(b), `"platform":"tistory"`)
	require.Contains(t, string(b), `"page_cursor":3`)

	velog := SiteInfo{Status: StatusSuccess, Platform: PlatformVelog, Cursor: TokenCursor("")}
	b, err = json.Marshal(velog)
	require.NoError(t, err)
	require.Contains(t, string(b), `"page_cursor":""`)
}

func TestLogViewFormatsKST(t *testing.T) {
	id := primitive.NewObjectID()
	entry := LogEntry{
		ID:        id,
		Name:      "alice",
		URL:       "https://velog.io/@alice/post",
		CreatedAt: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(entry.View())
	require.NoError(t, err)
	require.Contains(t, string(b), `"created_at":"2024-03-02 00:04:05"`)
	require.Contains(t, string(b), `"_id":"`+id.Hex()+`"`)
	require.Contains(t, string(b), `"og_image":null`)
}
