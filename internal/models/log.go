package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KST는 응답 날짜 표기에 쓰는 한국 시간대입니다.
var KST = time.FixedZone("KST", 9*60*60)

// Timestamp는 JSON에서 "2006-01-02 15:04:05"(KST) 형식으로 표현되는 시각입니다.
type Timestamp time.Time

func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(time.Time(t).In(KST).Format(time.DateTime)), nil
}

// MetaInfo는 링크 미리보기용 메타 태그 값입니다. 태그가 없으면 nil입니다.
type MetaInfo struct {
	Description *string `bson:"description" json:"description"`
	OgTitle     *string `bson:"og_title" json:"og_title"`
	OgImage     *string `bson:"og_image" json:"og_image"`
	OgURL       *string `bson:"og_url" json:"og_url"`
}

// LogEntry는 멤버가 남긴 글 링크 기록입니다. trash가 true면 목록에서 숨겨집니다.
type LogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	URL       string             `bson:"url" json:"url"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
	Trash     bool               `bson:"trash" json:"-"`
	MetaInfo  MetaInfo           `bson:"meta_info" json:"meta_info"`
}

// LogView는 API 응답에 쓰이는 LogEntry 표현입니다.
type LogView struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt Timestamp `json:"created_at"`
	MetaInfo  MetaInfo  `json:"meta_info"`
}

func (e LogEntry) View() LogView {
	return LogView{
		ID:        e.ID.Hex(),
		Name:      e.Name,
		URL:       e.URL,
		CreatedAt: Timestamp(e.CreatedAt),
		MetaInfo:  e.MetaInfo,
	}
}
