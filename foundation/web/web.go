// Package web is a small framework on top of gin: a Handler signature that
// returns errors, a middleware chain, and request/response helpers shared by
// every controller.
package web

import (
	"log"
	"net/http"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Handler is the signature all application handlers implement.
type Handler func(c *Context) error

// Middleware wraps a Handler with reusable behaviour (auth, logging).
type Middleware func(Handler) Handler

// App is the entrypoint for the web application. It embeds the gin engine so
// native gin routes (static files, websockets) can still be registered
// directly next to wrapped ones.
type App struct {
	*gin.Engine
	shutdown chan os.Signal
}

func NewApp(shutdown chan os.Signal) *App {
	return &App{
		Engine:   gin.New(),
		shutdown: shutdown,
	}
}

// SignalShutdown is used to gracefully shut down the app when an integrity
// issue is identified.
func (a *App) SignalShutdown() {
	a.shutdown <- syscall.SIGTERM
}

func (a *App) handle(method string, path string, handler Handler, middleware ...Middleware) {
	// Wrap outermost middleware first so it executes first.
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		if mw != nil {
			handler = mw(handler)
		}
	}

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := NewContext(gc)

		if err := handler(c); err != nil {
			// Handlers respond before returning; an error that reaches here
			// means the response could not be written at all.
			log.Println("web: unhandled error:", err)
			a.SignalShutdown()
		}
	})
}

func (a *App) Get(path string, handler Handler, middleware ...Middleware) {
	a.handle(http.MethodGet, path, handler, middleware...)
}

func (a *App) Post(path string, handler Handler, middleware ...Middleware) {
	a.handle(http.MethodPost, path, handler, middleware...)
}

func (a *App) Put(path string, handler Handler, middleware ...Middleware) {
	a.handle(http.MethodPut, path, handler, middleware...)
}

func (a *App) Patch(path string, handler Handler, middleware ...Middleware) {
	a.handle(http.MethodPatch, path, handler, middleware...)
}

func (a *App) Delete(path string, handler Handler, middleware ...Middleware) {
	a.handle(http.MethodDelete, path, handler, middleware...)
}
