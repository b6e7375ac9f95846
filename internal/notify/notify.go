package notify

import (
	"context"
	"log"
)

const (
	KindBookingConfirmed = "booking_confirmed"
	KindBookingRequested = "booking_requested"
	KindStaffAlert       = "staff_alert"
)

type Message struct {
	Kind string
	To   string
	Body string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the process log. Used when Twilio is not
// configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("notify [%s] to=%s: %s", msg.Kind, msg.To, msg.Body)
	return nil
}

type Dispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.sender.Send(context.Background(), msg); err != nil {
			log.Printf("notify error [%s]: %v", msg.Kind, err)
		}
	}
}

// Dispatch is fire-and-forget: messages without a recipient are skipped and a
// full queue drops the message.
func (d *Dispatcher) Dispatch(msg Message) {
	if d == nil || msg.To == "" {
		return
	}
	select {
	case d.queue <- msg:
	default:
		log.Println("notify queue full, dropping message")
	}
}

func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
