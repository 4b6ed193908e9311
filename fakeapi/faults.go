package fakeapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v5"
)

// Fault is a canned response served instead of the next request to a path.
type Fault struct {
	Status      int
	ContentType string
	Body        string
}

type faultQueue struct {
	mu     sync.Mutex
	byPath map[string][]Fault
}

func newFaultQueue() *faultQueue {
	return &faultQueue{ //nolint:exhaustruct
		byPath: make(map[string][]Fault),
	}
}

func (q *faultQueue) push(path string, fault Fault) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.byPath[path] = append(q.byPath[path], fault)
}

func (q *faultQueue) pop(path string) (Fault, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	queued := q.byPath[path]
	if len(queued) == 0 {
		return Fault{}, false //nolint:exhaustruct
	}

	if len(queued) == 1 {
		delete(q.byPath, path)
	} else {
		q.byPath[path] = queued[1:]
	}

	return queued[0], true
}

func (q *faultQueue) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ectx *echo.Context) error {
			fault, ok := q.pop(ectx.Request().URL.Path)
			if !ok {
				return next(ectx)
			}

			status := fault.Status
			if status == 0 {
				status = http.StatusInternalServerError
			}

			contentType := fault.ContentType
			if contentType == "" {
				contentType = echo.MIMETextPlainCharsetUTF8
			}

			return ectx.Blob(status, contentType, []byte(fault.Body))
		}
	}
}

// FailNext queues fault for the next request whose URL path equals path.
// Faults for the same path are served in the order they were queued.
func (a *API) FailNext(path string, fault Fault) {
	a.faults.push(path, fault)
}
