package i2cdecode

import (
	"context"
	"log"
	"path/filepath"
	"runtime"
	"sync"
)

// BaseAdapter holds the channels every adapter exposes.
type BaseAdapter struct {
	name     string
	cfg      *AdapterConfig
	recvChan chan Event

	errOnce sync.Once
	errChan chan error

	noticeChan chan Notice

	closeOnce sync.Once
	closeChan chan struct{}

	eosOnce sync.Once
}

func NewBaseAdapter(name string, cfg *AdapterConfig) *BaseAdapter {
	return &BaseAdapter{
		name:       name,
		cfg:        cfg,
		recvChan:   make(chan Event, 1024),
		errChan:    make(chan error, 1),
		noticeChan: make(chan Notice, 100),
		closeChan:  make(chan struct{}),
	}
}

// Name returns the adapter name.
func (base *BaseAdapter) Name() string {
	return base.name
}

func (base *BaseAdapter) Config() *AdapterConfig {
	return base.cfg
}

// Return the receive channel for the adapter
func (base *BaseAdapter) Recv() <-chan Event {
	return base.recvChan
}

// RecvChan is the writable side of Recv for adapter implementations.
func (base *BaseAdapter) RecvChan() chan<- Event {
	return base.recvChan
}

// Return the error channel for the adapter
func (base *BaseAdapter) Err() <-chan error {
	return base.errChan
}

func (base *BaseAdapter) Notice() <-chan Notice {
	return base.noticeChan
}

// Done is closed once Close has been called.
func (base *BaseAdapter) Done() <-chan struct{} {
	return base.closeChan
}

func (base *BaseAdapter) Close() error {
	base.closeOnce.Do(func() {
		close(base.closeChan)
		base.errOnce.Do(func() {
			select {
			case base.errChan <- nil:
			default:
				log.Println("failed to send <nil> to errchan")
			}
		})
	})
	return nil
}

// Set a fatal adapter error, meaning the capture is broken and cannot continue.
func (base *BaseAdapter) Fatal(err error) {
	base.errOnce.Do(func() {
		select {
		case base.errChan <- err:
		default:
			_, file, no, ok := runtime.Caller(1)
			if ok {
				log.Printf("%s:%d error channel full: %v\n", filepath.Base(file), no, err)
			} else {
				log.Printf("error channel full: %v", err)
			}
		}
	})
}

// Send pushes an event without blocking. A full receive channel drops the
// event and reports ErrDroppedEvent as an error notice.
func (base *BaseAdapter) Send(ev Event) bool {
	select {
	case base.recvChan <- ev:
		return true
	default:
		base.Error(ErrDroppedEvent)
		return false
	}
}

// Deliver blocks until the event is taken, the adapter is closed or ctx is done.
func (base *BaseAdapter) Deliver(ctx context.Context, ev Event) error {
	select {
	case base.recvChan <- ev:
		return nil
	case <-base.closeChan:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EndOfStream closes the receive channel. Only the goroutine feeding Recv may call it.
func (base *BaseAdapter) EndOfStream() {
	base.eosOnce.Do(func() {
		close(base.recvChan)
	})
}

func (base *BaseAdapter) sendNotice(noticeType NoticeType, details string) {
	select {
	case base.noticeChan <- Notice{Type: noticeType, Details: details}:
	default:
		_, file, no, ok := runtime.Caller(2)
		if ok {
			log.Printf("%s#%d notice channel full: %s\n", filepath.Base(file), no, details)
		} else {
			log.Printf("notice channel full: %s", details)
		}
	}
}

// Send an error notice
func (base *BaseAdapter) Error(err error) {
	base.sendNotice(NoticeError, err.Error())
}

// Send a warning notice
func (base *BaseAdapter) Warn(warn string) {
	base.sendNotice(NoticeWarning, warn)
}

// Send an info notice
func (base *BaseAdapter) Info(info string) {
	base.sendNotice(NoticeInfo, info)
}

// Send a debug notice, only when the adapter runs with Debug set
func (base *BaseAdapter) Debug(debug string) {
	if base.cfg != nil && base.cfg.Debug {
		base.sendNotice(NoticeDebug, debug)
	}
}
