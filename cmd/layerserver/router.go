package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

func router(global *Global) http.Handler {
	router := mux.NewRouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := handler{Global: global}

	GET.HandleFunc("/readable", h.Readable).Queries("path", "{path}")
	GET.HandleFunc("/layers", h.Layers).Queries("path", "{path}")
	GET.HandleFunc("/version", h.Version)

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
	)

	return standard.Then(router)
}
