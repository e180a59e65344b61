package selfplay

import "github.com/pkg/errors"

// Sink is the thread-safe FIFO of spec.md §4.K: self-play producers push
// byte blobs, a single consumer pops and writes them to durable storage. It
// is a bounded channel with a blocking push, the bounded-queue-with-blocking
// push policy the specification recommends.
type Sink struct {
	queue chan []byte
}

// NewSink creates a sink buffering up to capacity blobs before Push blocks.
func NewSink(capacity int) *Sink {
	return &Sink{queue: make(chan []byte, capacity)}
}

// Push enqueues blob, blocking if the sink is at capacity.
func (s *Sink) Push(blob []byte) {
	s.queue <- blob
}

// Pop dequeues the next blob, blocking until one is available. ok is false
// once the sink is closed and fully drained.
func (s *Sink) Pop() (blob []byte, ok bool) {
	blob, ok = <-s.queue
	return blob, ok
}

// Close signals that no more blobs will be pushed. Buffered blobs remain
// poppable until drained.
func (s *Sink) Close() {
	close(s.queue)
}

// Drain runs a consumer loop calling write for every popped blob until the
// sink is closed and drained, or write returns an error.
func (s *Sink) Drain(write func([]byte) error) error {
	for {
		blob, ok := s.Pop()
		if !ok {
			return nil
		}
		if err := write(blob); err != nil {
			return errors.Wrap(err, "selfplay: sink consumer write failed")
		}
	}
}
