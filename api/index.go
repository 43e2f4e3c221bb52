// Package handler is the serverless entrypoint. The container is built on the
// first invocation and reused while the function instance stays warm.
package handler

import (
	"booktable/config"
	"booktable/di"
	"booktable/shared/logger"
	"booktable/transport/http"
	stdhttp "net/http"
	"sync"
)

var (
	service *http.HTTP
	once    sync.Once
)

func Handler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
