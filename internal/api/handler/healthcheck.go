package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type healthcheckResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(healthcheckResponse{
			Status: "ok",
			Time:   time.Now(),
		})
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
