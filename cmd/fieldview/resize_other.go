//go:build !unix

package main

import "time"

const resizePollInterval = 250 * time.Millisecond

// notifyResize polls width and signals ch whenever it changes. There is no
// resize signal to subscribe to on this platform.
func notifyResize(ch chan<- struct{}, width func() int) (stop func()) {
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(resizePollInterval)
		defer t.Stop()
		last := width()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if w := width(); w != last {
					last = w
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			}
		}
	}()
	return func() { close(done) }
}
