package health

import (
	"fmt"
	"net/http"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

// HealthHandler는 서버가 살아 있으면 "connected"를 응답합니다.
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprint(w, "connected")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
