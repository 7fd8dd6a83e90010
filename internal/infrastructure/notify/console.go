// Package notify contains notification channel implementations.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/studyhall/studyhall/internal/domain/notification"
)

// ConsoleChannel writes notifications to a writer, one per line. The default
// channel in dev mode; real transports (mail, push) plug in behind the same
// interface.
type ConsoleChannel struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleChannel creates a console channel writing to stdout.
func NewConsoleChannel() *ConsoleChannel {
	return &ConsoleChannel{out: os.Stdout}
}

// NewConsoleChannelWithWriter creates a console channel with a custom writer,
// used in tests.
func NewConsoleChannelWithWriter(w io.Writer) *ConsoleChannel {
	return &ConsoleChannel{out: w}
}

// Name implements notification.Channel.
func (c *ConsoleChannel) Name() string { return "console" }

// Send implements notification.Channel.
func (c *ConsoleChannel) Send(_ context.Context, n *notification.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, "[%s] to=%s %s: %s\n", n.Type, n.UserID, n.Title, n.Body)
	return err
}
