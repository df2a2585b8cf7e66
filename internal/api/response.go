package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"logboard/internal/log"
)

// 응답 메시지
const (
	msgBadRequest   = "요청 형식이 올바르지 않습니다."
	msgNotMember    = "멤버가 아닙니다."
	msgInsertFailed = "Log 남기기에 실패했습니다."
	msgListFailed   = "TIL 목록 조회에 실패했습니다."
	msgLogNotFound  = "Log를 찾을 수 없습니다."
	msgTrashFailed  = "Log 삭제에 실패했습니다."
	msgURLRequired  = "url 파라미터가 필요합니다."
)

type envelope struct {
	Result  string `json:"result"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// respond는 {result, data?, message?} 형식으로 응답합니다. status가 400 미만이면 result는 success입니다.
func respond(w http.ResponseWriter, status int, data any, message string) {
	body := envelope{Result: "success", Data: data, Message: message}
	if status >= http.StatusBadRequest {
		body.Result = "fail"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("응답 인코딩 실패")
	}
}

// decodeStrings는 JSON 객체 본문에서 문자열 필드를 검사해 꺼냅니다.
// 실패하면 사용자에게 보여줄 메시지를 반환합니다.
func decodeStrings(r *http.Request, required ...string) (map[string]string, string) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, msgBadRequest
	}
	data, ok := raw.(map[string]any)
	if !ok {
		return nil, msgBadRequest
	}

	var missing []string
	for _, field := range required {
		if data[field] == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Sprintf("필수 입력값이 누락되었습니다: %s", strings.Join(missing, ", "))
	}

	out := make(map[string]string, len(required))
	for _, field := range required {
		value, ok := data[field].(string)
		if !ok {
			return nil, fmt.Sprintf("%s의 타입이 올바르지 않습니다.", field)
		}
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Sprintf("%s은 빈 문자열을 허용하지 않습니다.", field)
		}
		out[field] = value
	}
	return out, ""
}
