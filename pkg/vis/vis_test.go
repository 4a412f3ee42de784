package vis

import (
	"sync"

	"github.com/kdsutter/visstream/internal/wire"
)

// fakeTransport records every payload sent to it, decoded for inspection,
// standing in for internal/transport.WSTransport in tests.
type fakeTransport struct {
	mu     sync.Mutex
	sent   []wire.SceneUpdate
	closed bool
	failOn int // if > 0, the failOn-th Send and every later one fail
}

func (f *fakeTransport) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn > 0 && len(f.sent)+1 >= f.failOn {
		return errSendFailed
	}
	u, err := wire.Decode(payload)
	if err != nil {
		return err
	}
	f.sent = append(f.sent, u)
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeTransport) last() wire.SceneUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type sendError string

func (e sendError) Error() string { return string(e) }

const errSendFailed = sendError("fakeTransport: send failed")
