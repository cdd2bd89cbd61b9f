package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lmi/i2cdecode"
)

const SigrokFileName = "sigrok-file"

func init() {
	if err := i2cdecode.RegisterAdapter(&i2cdecode.AdapterInfo{
		Name:        SigrokFileName,
		Description: "sigrok-cli I2C annotation text from a file or stdin (-)",
		New:         NewSigrokFile,
	}); err != nil {
		panic(err)
	}
}

// SigrokFile reads a finished capture and closes Recv at the end of it.
type SigrokFile struct {
	*i2cdecode.BaseAdapter
	cfg *i2cdecode.AdapterConfig
	rc  io.ReadCloser
}

func NewSigrokFile(cfg *i2cdecode.AdapterConfig) (i2cdecode.Adapter, error) {
	return &SigrokFile{
		BaseAdapter: i2cdecode.NewBaseAdapter(SigrokFileName, cfg),
		cfg:         cfg,
	}, nil
}

func (sf *SigrokFile) Open(ctx context.Context) error {
	switch {
	case sf.cfg.Input != nil:
		sf.rc = io.NopCloser(sf.cfg.Input)
	case sf.cfg.Port == "" || sf.cfg.Port == "-":
		sf.rc = io.NopCloser(os.Stdin)
	default:
		f, err := os.Open(sf.cfg.Port)
		if err != nil {
			return fmt.Errorf("failed to open capture %q: %w", sf.cfg.Port, err)
		}
		sf.rc = f
	}
	var r io.Reader = sf.rc
	if sf.cfg.OnProgress != nil {
		r = &progressReader{r: sf.rc, fn: sf.cfg.OnProgress}
	}
	go sf.recvManager(ctx, r)
	return nil
}

func (sf *SigrokFile) Close() error {
	sf.BaseAdapter.Close()
	if sf.rc != nil {
		return sf.rc.Close()
	}
	return nil
}

func (sf *SigrokFile) recvManager(ctx context.Context, r io.Reader) {
	defer sf.EndOfStream()
	var p LineParser
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ev, ok, err := p.Parse(sc.Text())
		if err != nil {
			sf.Warn(err.Error())
			continue
		}
		if !ok {
			continue
		}
		if err := sf.Deliver(ctx, ev); err != nil {
			return
		}
	}
	if err := sc.Err(); err != nil {
		select {
		case <-sf.Done():
		default:
			sf.Fatal(fmt.Errorf("failed to read capture: %w", err))
		}
		return
	}
	sf.Debug(fmt.Sprintf("end of capture after %d lines", p.Line()))
}

type progressReader struct {
	r  io.Reader
	fn func(int)
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if n > 0 {
		pr.fn(n)
	}
	return n, err
}
