package crawlers

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

//go:generate mockgen -destination=../mocks/mock_fetcher.go -package=mocks logboard/internal/crawlers Fetcher

// Response는 HTTP 응답의 상태 코드와 본문입니다.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher는 크롤러가 사용하는 HTTP 호출 인터페이스입니다.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
	PostJSON(ctx context.Context, url string, body any) (*Response, error)
}

// RestyFetcher는 resty 클라이언트로 Fetcher를 구현합니다.
type RestyFetcher struct {
	client *resty.Client
}

// NewRestyFetcher는 요청마다 timeout이 걸리는 Fetcher를 생성합니다.
func NewRestyFetcher(timeout time.Duration, userAgent string) *RestyFetcher {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	return &RestyFetcher{client: client}
}

func (f *RestyFetcher) Get(ctx context.Context, url string) (*Response, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", url)
	}
	return &Response{StatusCode: res.StatusCode(), Body: res.Body()}, nil
}

func (f *RestyFetcher) PostJSON(ctx context.Context, url string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "요청 본문 직렬화 실패")
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", url)
	}
	return &Response{StatusCode: res.StatusCode(), Body: res.Body()}, nil
}
