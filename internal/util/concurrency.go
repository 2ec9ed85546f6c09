package util

import "sync"

// Gate holds spawned goroutines until Open is called so they start together.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

func (g *Gate) Open() {
	g.once.Do(func() { close(g.ch) })
}

// Go runs f on a new goroutine tracked by wg. A non-nil gate delays f until
// the gate opens.
func Go(wg *sync.WaitGroup, gate *Gate, f func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if gate != nil {
			<-gate.ch
		}
		f()
	}()
}
