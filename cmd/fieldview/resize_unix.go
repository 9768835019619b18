//go:build unix

package main

import (
	"os"
	ossignal "os/signal"
	"syscall"
)

// notifyResize forwards SIGWINCH to ch without blocking.
func notifyResize(ch chan<- struct{}, _ func() int) (stop func()) {
	sigs := make(chan os.Signal, 1)
	ossignal.Notify(sigs, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-sigs:
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return func() {
		ossignal.Stop(sigs)
		close(done)
	}
}
