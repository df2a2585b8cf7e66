package crawlers

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var (
	// ErrUpstream은 네트워크 오류, 2xx가 아닌 응답, 깨진 JSON을 뜻합니다.
	// 페이지가 더 없다는 신호와는 구분됩니다.
	ErrUpstream = errors.New("upstream request failed")
	// ErrPageLimit은 최대 페이지 수에 도달했을 때 반환됩니다.
	ErrPageLimit = errors.New("page limit reached")
)

// SiteInfo.Message 값
const (
	msgEmptyURL        = "url is empty"
	msgLookupFailed    = "site lookup failed"
	msgUnknownPlatform = "platform not recognized"
	msgConfigNotFound  = "blog config not found"
	msgFetchFailed     = "post fetch failed"
	msgPageLimit       = "page limit reached"
)

func upstreamError(err error) error {
	return errors.Wrapf(ErrUpstream, "%v", err)
}

// decodeResponse는 2xx 응답의 JSON 본문을 v로 디코딩합니다.
func decodeResponse(res *Response, v any) error {
	if !res.OK() {
		return errors.Wrapf(ErrUpstream, "응답 상태 코드 %d", res.StatusCode)
	}
	if err := json.Unmarshal(res.Body, v); err != nil {
		return errors.Wrapf(ErrUpstream, "JSON 파싱 실패: %v", err)
	}
	return nil
}

// flexString은 JSON 숫자나 문자열 어느 쪽으로 와도 문자열로 받는 id 타입입니다.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// optional은 빈 문자열을 nil로 바꿉니다.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
