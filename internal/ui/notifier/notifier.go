// Package notifier provides a topic-filtered broadcast mechanism for state updates.
package notifier

import "sync"

// Topic identifies which part of the UI state changed. Topics are bit flags
// so a listener can watch several at once.
type Topic uint8

// State topics.
const (
	TopicNavigation Topic = 1 << iota
	TopicQuery
	TopicDialog
	TopicAlert
	TopicSession

	// TopicAll matches every topic.
	TopicAll Topic = 0xff
)

// Notifier broadcasts update signals to all subscribed listeners.
// It uses a simple ping mechanism - listeners receive an empty struct
// when a watched topic changes and should re-read the state snapshot.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]Topic
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]Topic),
	}
}

// Subscribe returns a channel that receives pings when any topic in mask changes.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe(mask Topic) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = mask
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	_, ok := n.listeners[ch]
	delete(n.listeners, ch)
	n.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Broadcast pings every listener whose mask includes topic.
// Non-blocking: if a listener's channel is full, the ping is skipped
// since the pending ping already tells it to re-read.
func (n *Notifier) Broadcast(topic Topic) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch, mask := range n.listeners {
		if mask&topic == 0 {
			continue
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of active listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
