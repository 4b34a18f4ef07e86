package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/invoicepress/invoicepress/svc"
)

const shutdownTimeout = 10 * time.Second

// Service runs the HTTP server as a managed service. Cancelling its context
// triggers a graceful shutdown: the listener stops accepting immediately and
// in-flight requests get shutdownTimeout to finish.
type Service struct {
	Ctx    context.Context    // Service Context
	cancel context.CancelFunc // Service Context CancelFunc
	state  int                // internal service state
	done   chan error         // Shutdown Error Channel
	Server *http.Server
}

// Ensure web.Service implements svc.Service
var _ svc.Service = (*Service)(nil)

func NewService(parentCtx context.Context, addr string, router http.Handler) *Service {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Service{
		Ctx:    svcCtx,
		cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		Server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

func (s *Service) Name() string {
	return "WebService"
}

func (s *Service) Start() error {
	if s.state == svc.StateRUNNING {
		return errors.New("already started")
	}
	if s.state != svc.StateREADY {
		return errors.New("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	go s.run()
	return nil
}

func (s *Service) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Web] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
}

func (s *Service) Done() <-chan error {
	return s.done
}

func (s *Service) run() {
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("[INFO][Web] listening on %s ...", s.Server.Addr)
		if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		} else {
			serverErrChan <- nil
		}
	}()

	select {
	case err := <-serverErrChan:
		// Listener died on its own
		s.done <- err
	case <-s.Ctx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Stop accepting immediately; in-flight requests get the timeout to finish
		if err := s.Server.Shutdown(ctx); err != nil {
			log.Printf("[ERROR][Web] server shutdown failed: %v", err)
		}
		s.done <- <-serverErrChan
		log.Println("[INFO][Web] shutdown complete")
	}
}
