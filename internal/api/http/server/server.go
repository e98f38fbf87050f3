package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Server wraps the fiber app with an address and graceful shutdown.
type Server struct {
	app  *fiber.App
	addr string
}

// New creates a Server listening on addr once started.
func New(app *fiber.App, addr string) *Server {
	return &Server{app: app, addr: addr}
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

// Stop shuts the server down, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Address returns the listen address.
func (s *Server) Address() string {
	return s.addr
}
