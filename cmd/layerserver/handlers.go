package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carbocation/looptracereader/compileinfo"
	"github.com/carbocation/looptracereader/layer"
)

var errNoReader = errors.New("no reader accepts this path")

type handler struct {
	*Global
}

func (h *handler) Readable(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	output := struct {
		Path     string `json:"path"`
		Readable bool   `json:"readable"`
	}{
		path,
		layer.FirstReader(path, h.Lookups()...) != nil,
	}

	h.writeJSON(w, http.StatusOK, output)
}

func (h *handler) Layers(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	read := layer.FirstReader(path, h.Lookups()...)
	if read == nil {
		h.httpError(w, http.StatusNotFound, errNoReader)
		return
	}

	layers, err := read(path)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, err)
		return
	}
	if layers == nil {
		layers = []layer.Layer{}
	}

	h.writeJSON(w, http.StatusOK, layers)
}

func (h *handler) Version(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, compileinfo.Get())
}

func (h *handler) httpError(w http.ResponseWriter, status int, err error) {
	h.log.Println(err)

	h.writeJSON(w, status, struct {
		Error string `json:"error"`
	}{err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.Println(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
