package common

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Interrupt blocks until the process receives SIGINT or SIGTERM,
// or until cancel is closed.
func Interrupt(cancel <-chan struct{}) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigs:
		return fmt.Errorf("received signal %s", sig)
	case <-cancel:
		return errors.New("canceled")
	}
}
