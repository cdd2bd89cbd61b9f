package i2cdecode

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Adapter produces bus events for the decoder.
type Adapter interface {
	Name() string
	Open(context.Context) error
	Close() error
	Recv() <-chan Event
	Err() <-chan error
	Notice() <-chan Notice
}

type AdapterInfo struct {
	Name               string
	Description        string
	RequiresSerialPort bool
	Live               bool
	New                func(*AdapterConfig) (Adapter, error)
}

func (a *AdapterInfo) String() string {
	return fmt.Sprintf("%s | %s, requires serial port: %v, live: %v", a.Name, a.Description, a.RequiresSerialPort, a.Live)
}

type AdapterConfig struct {
	Debug        bool
	Port         string
	PortBaudrate int
	// Input overrides Port for adapters reading a capture stream.
	Input io.Reader
	// Events is the fixed sequence played back by the replay adapter.
	Events     []Event
	OnMessage  func(string)
	OnProgress func(n int)
}

var adapterMap = make(map[string]*AdapterInfo)

func NewAdapter(adapterName string, cfg *AdapterConfig) (Adapter, error) {
	if cfg == nil {
		cfg = &AdapterConfig{}
	}
	if cfg.OnMessage == nil {
		cfg.OnMessage = func(msg string) {
			_, file, no, ok := runtime.Caller(1)
			if ok {
				log.Printf("%s#%d %v", filepath.Base(file), no, msg)
			} else {
				log.Println(msg)
			}
		}
	}
	if adapter, found := adapterMap[adapterName]; found {
		return adapter.New(cfg)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAdapter, adapterName)
}

func RegisterAdapter(adapter *AdapterInfo) error {
	if _, found := adapterMap[adapter.Name]; !found {
		adapterMap[adapter.Name] = adapter
		return nil
	}
	return fmt.Errorf("adapter %s already registered", adapter.Name)
}

func ListAdapterNames() []string {
	var out []string
	for name := range adapterMap {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func ListAdapters() []AdapterInfo {
	var out []AdapterInfo
	for _, adapter := range adapterMap {
		out = append(out, *adapter)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}
