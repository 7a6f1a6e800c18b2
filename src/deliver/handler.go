// Package deliver exposes archive navigation over HTTP: validation,
// directory listings and ranged file reads against the archives in a
// configured directory.
package deliver

// https://developer.mozilla.org/en-US/docs/Web/HTTP/Range_requests
// https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Range

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/aurora-is-near/tarnav/src/source"
	"github.com/aurora-is-near/tarnav/src/tarnav"
)

const readChunk = 32 * 1024

// Handler serves navigation results for the archives below Config.Dir.
// Every request opens its own source handle, so concurrent requests
// never share a read position.
type Handler struct {
	Config Config
	Log    *logrus.Logger
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		Config: cfg,
		Log:    logrus.StandardLogger(),
	}
}

// Router builds the request router below the configured prefix.
func (handler *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	s := r
	if prefix := strings.TrimSuffix(handler.Config.Prefix, "/"); prefix != "" {
		s = r.PathPrefix(prefix).Subrouter()
	}
	s.HandleFunc("/{archive}/check", handler.Check).Methods(http.MethodGet)
	s.HandleFunc("/{archive}/list", handler.List).Methods(http.MethodGet)
	s.HandleFunc("/{archive}/file", handler.File).Methods(http.MethodGet)
	return r
}

func (handler *Handler) open(w http.ResponseWriter, r *http.Request) (*source.Handle, bool) {
	name := mux.Vars(r)["archive"]
	filename, err := source.Locate(handler.Config.Dir, name)
	if err != nil {
		handler.Log.WithField("archive", name).Warn("archive not found")
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	h, err := source.Open(filename)
	if err != nil {
		handler.Log.WithError(err).WithField("archive", name).Error("open failed")
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}
	return h, true
}

func (handler *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tarnav.ErrNotFound), errors.Is(err, tarnav.ErrBrokenLink):
		status = http.StatusNotFound
	case errors.Is(err, tarnav.ErrNotDir), errors.Is(err, tarnav.ErrNotFile),
		errors.Is(err, tarnav.ErrLinkCycle), errors.Is(err, tarnav.ErrTooManyEntries):
		status = http.StatusBadRequest
	case errors.Is(err, tarnav.ErrOffsetRange):
		status = http.StatusRequestedRangeNotSatisfiable
	}
	if status == http.StatusInternalServerError {
		handler.Log.WithError(err).WithField("url", r.URL.String()).Error("request failed")
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Check validates the archive and reports its header count.
func (handler *Handler) Check(w http.ResponseWriter, r *http.Request) {
	h, ok := handler.open(w, r)
	if !ok {
		return
	}
	defer func() { _ = h.Close() }()
	count, err := tarnav.Check(h.Source())
	if err != nil {
		handler.fail(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"headers": count})
}

// List reports the direct children of the directory named by the path
// query parameter, in archive order.
func (handler *Handler) List(w http.ResponseWriter, r *http.Request) {
	h, ok := handler.open(w, r)
	if !ok {
		return
	}
	defer func() { _ = h.Close() }()
	children, err := tarnav.List(h.Source(), r.URL.Query().Get("path"), handler.Config.MaxList)
	if err != nil {
		handler.fail(w, r, err)
		return
	}
	if children == nil {
		children = []string{}
	}
	writeJSON(w, children)
}

func parseRange(r string) (start, end int64) {
	if pos := strings.Index(r, "="); pos < 0 {
		return 0, 0
	} else {
		r = r[pos+1:]
	}
	if pos := strings.Index(r, "-"); pos < 0 {
		return 0, 0
	} else {
		bs, es := r[:pos], r[pos+1:]
		start, _ = strconv.ParseInt(bs, 10, 64)
		end, _ = strconv.ParseInt(es, 10, 64)
		return start, end
	}
}

// File streams the content of the file named by the path query
// parameter, honoring a single bytes=start-end Range header. Range ends
// are inclusive per RFC 9110; an open end streams to the end of file.
func (handler *Handler) File(w http.ResponseWriter, r *http.Request) {
	h, ok := handler.open(w, r)
	if !ok {
		return
	}
	defer func() { _ = h.Close() }()
	p := r.URL.Query().Get("path")
	entry, err := tarnav.Resolve(h.Source(), p)
	if err != nil {
		handler.fail(w, r, err)
		return
	}
	if !entry.Header.IsFile() {
		handler.fail(w, r, tarnav.ErrNotFile)
		return
	}
	size := entry.Header.Size
	start, end := parseRange(r.Header.Get("Range"))
	w.Header().Add("Accept-Ranges", "bytes")
	w.Header().Add("Content-Type", "application/octet-stream")
	status := http.StatusOK
	if start != 0 || end != 0 {
		if start >= size {
			w.Header().Add("Content-Range", fmt.Sprintf("bytes */%d", size))
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		if end == 0 || end >= size {
			end = size - 1
		}
		w.Header().Add("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
		status = http.StatusPartialContent
	} else {
		end = size - 1
	}
	length := end - start + 1
	if size == 0 {
		length = 0
	}
	w.Header().Add("Content-Length", strconv.FormatInt(length, 10))
	w.WriteHeader(status)

	buf := make([]byte, readChunk)
	offset := start
	left := length
	for left > 0 {
		chunk := buf
		if left < int64(len(chunk)) {
			chunk = chunk[:left]
		}
		n, _, err := tarnav.ReadFile(h.Source(), p, offset, chunk)
		if err != nil {
			handler.Log.WithError(err).WithField("path", p).Error("read failed")
			return
		}
		if n == 0 {
			return
		}
		if _, err := w.Write(chunk[:n]); err != nil {
			return
		}
		offset += int64(n)
		left -= int64(n)
	}
}

// Serve runs the handler on the configured address until the server fails.
func Serve(cfg Config) error {
	return http.ListenAndServe(cfg.Listen, NewHandler(cfg).Router())
}
