package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/lmi/i2cdecode"
	"go.bug.st/serial"
)

const SerialName = "serial"

func init() {
	if err := i2cdecode.RegisterAdapter(&i2cdecode.AdapterInfo{
		Name:               SerialName,
		Description:        "Live sniffer printing sigrok style I2C annotations over a serial port",
		RequiresSerialPort: true,
		Live:               true,
		New:                NewSerial,
	}); err != nil {
		panic(err)
	}
}

type Serial struct {
	*i2cdecode.BaseAdapter
	cfg  *i2cdecode.AdapterConfig
	port serial.Port
}

func NewSerial(cfg *i2cdecode.AdapterConfig) (i2cdecode.Adapter, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("%s: no port given", SerialName)
	}
	if cfg.PortBaudrate == 0 {
		cfg.PortBaudrate = 115200
	}
	return &Serial{
		BaseAdapter: i2cdecode.NewBaseAdapter(SerialName, cfg),
		cfg:         cfg,
	}, nil
}

func (s *Serial) Open(ctx context.Context) error {
	mode := &serial.Mode{
		BaudRate: s.cfg.PortBaudrate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}

	err := retry.Do(func() error {
		p, err := serial.Open(s.cfg.Port, mode)
		if err != nil {
			return fmt.Errorf("failed to open com port %q : %v", s.cfg.Port, err)
		}
		s.port = p
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			s.cfg.OnMessage(fmt.Sprintf("retry #%d: %v", n, err))
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	if err := s.port.SetReadTimeout(10 * time.Millisecond); err != nil {
		s.port.Close()
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	s.port.ResetInputBuffer()

	go s.recvManager(ctx)
	return nil
}

func (s *Serial) Close() error {
	s.BaseAdapter.Close()
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}

func (s *Serial) closed() bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}

func (s *Serial) recvManager(ctx context.Context) {
	var p LineParser
	buf := make([]byte, 0, 256)
	readBuf := make([]byte, 64)
	for ctx.Err() == nil && !s.closed() {
		n, err := s.port.Read(readBuf)
		if err != nil {
			if !s.closed() {
				s.Fatal(fmt.Errorf("failed to read com port: %w", err))
			}
			return
		}
		if n == 0 {
			continue
		}
		buf = s.parse(&p, buf, readBuf[:n])
	}
}

// parse handles every complete line in readBuf and returns the partial rest.
func (s *Serial) parse(p *LineParser, buf, readBuf []byte) []byte {
	for _, b := range readBuf {
		switch b {
		case '\r':
			continue
		case '\n':
			if len(buf) == 0 {
				continue
			}
			line := string(buf)
			buf = buf[:0]
			if s.cfg.Debug {
				s.cfg.OnMessage("<< " + line)
			}
			ev, ok, err := p.Parse(line)
			if err != nil {
				s.Warn(err.Error())
				continue
			}
			if ok {
				s.Send(ev)
			}
		default:
			buf = append(buf, b)
		}
	}
	return buf
}
