package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationDuration is how long a notification stays on screen.
const NotificationDuration = 3 * time.Second

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short-lived, dismissible message.
type Notification struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	Duration    time.Duration
}

// Notifications queues messages until the next page render drains them.
type Notifications struct {
	mu      sync.Mutex
	pending []Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

func (n *Notifications) Push(note Notification) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.Duration == 0 {
		note.Duration = NotificationDuration
	}
	if note.Variant == "" {
		note.Variant = VariantDefault
	}
	n.mu.Lock()
	n.pending = append(n.pending, note)
	n.mu.Unlock()
}

func (n *Notifications) Success(title, description string) {
	n.Push(Notification{Title: title, Description: description})
}

func (n *Notifications) Error(title, description string) {
	n.Push(Notification{Title: title, Description: description, Variant: VariantDestructive})
}

// Drain returns and forgets every pending notification.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
