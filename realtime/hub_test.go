package realtime

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hub's channels and client map are package-level singletons, so the
// tests must share one RunHub goroutine: a second concurrent hub can consume
// a Broadcast before the hub that received the Register commits the map
// write, losing the event.
var hubOnce sync.Once

func startHub() {
	hubOnce.Do(func() { go RunHub() })
}

type fakeConn struct {
	mu     sync.Mutex
	frames []eventEnvelope
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.frames = append(f.frames, v.(eventEnvelope))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *fakeConn) frame(i int) eventEnvelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames[i]
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHubDeliversOnlyToRecipients(t *testing.T) {
	startHub()

	alice := &fakeConn{}
	bob := &fakeConn{}
	aliceID, bobID := uuid.New(), uuid.New()
	Register <- &Client{UserID: aliceID, Conn: alice}
	Register <- &Client{UserID: bobID, Conn: bob}

	Notify("new-message", "hola", aliceID)

	require.Eventually(t, func() bool { return alice.frameCount() == 1 }, time.Second, 5*time.Millisecond)
	got := alice.frame(0)
	assert.Equal(t, "new-message", got.Event)
	assert.Equal(t, "hola", got.Data)
	assert.Zero(t, bob.frameCount())
}

func TestHubDropsDeadConnections(t *testing.T) {
	startHub()

	dead := &fakeConn{fail: true}
	deadID := uuid.New()
	Register <- &Client{UserID: deadID, Conn: dead}

	Notify("booking-created", "x", deadID)

	require.Eventually(t, func() bool { return dead.isClosed() }, time.Second, 5*time.Millisecond)
	assert.Zero(t, dead.frameCount())
}
