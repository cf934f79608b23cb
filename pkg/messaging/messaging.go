// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package messaging implements the messaging collaborator contract over
// NATS core pub/sub, grounded on the teacher's pkg/nats client (connection
// management, Publish/Flush/Close). The engine only depends on
// send(values)/commit() and receive(timeoutMs)/commit()/purge(); this
// package is the minimal concrete Sender/Receiver pair needed to exercise
// the batch engine against a real queue.
package messaging

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/xapiens/RVPF-sub009/pkg/log"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// ErrMessagingFailure wraps every error this collaborator returns.
var ErrMessagingFailure = fmt.Errorf("messaging: failure")

// Sender publishes PointValues to a NATS subject.
type Sender struct {
	conn    *nats.Conn
	subject string
}

// NewSender wraps an already-connected NATS connection.
func NewSender(conn *nats.Conn, subject string) *Sender {
	return &Sender{conn: conn, subject: subject}
}

// Send publishes every value as one wire-encoded message. Send is
// expected to be called before Commit at a batch boundary.
func (s *Sender) Send(values []value.PointValue) error {
	for _, pv := range values {
		if err := s.conn.Publish(s.subject, value.EncodePointValue(pv)); err != nil {
			return fmt.Errorf("%w: publish: %v", ErrMessagingFailure, err)
		}
	}
	return nil
}

// Commit flushes the outbound buffer, blocking until the server has
// acknowledged receipt. Callers commit the store before the messaging
// collaborator so a crash between the two never loses a value that was
// already reported as sent.
func (s *Sender) Commit() error {
	if err := s.conn.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrMessagingFailure, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Sender) Close() error {
	s.conn.Close()
	return nil
}

// Receiver consumes PointValues from a NATS subject via a channel
// subscription.
type Receiver struct {
	sub *nats.Subscription
	ch  chan *nats.Msg
}

// NewReceiver subscribes to subject, optionally as part of a queue group
// (empty queue means every Receiver gets every message).
func NewReceiver(conn *nats.Conn, subject, queue string) (*Receiver, error) {
	ch := make(chan *nats.Msg, 256)
	var sub *nats.Subscription
	var err error
	if queue != "" {
		sub, err = conn.ChanQueueSubscribe(subject, queue, ch)
	} else {
		sub, err = conn.ChanSubscribe(subject, ch)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe: %v", ErrMessagingFailure, err)
	}
	return &Receiver{sub: sub, ch: ch}, nil
}

// Receive blocks up to timeoutMs for the next message, returning ok=false
// on timeout. A decode failure is logged and treated as a timeout rather
// than propagated, since one malformed message must not wedge the receive
// loop.
func (r *Receiver) Receive(timeoutMs int) (value.PointValue, bool) {
	select {
	case msg, open := <-r.ch:
		if !open {
			return value.PointValue{}, false
		}
		pv, err := value.DecodePointValue(msg.Data)
		if err != nil {
			log.Warn("messaging: malformed message dropped: ", err)
			return value.PointValue{}, false
		}
		return pv, true
	case <-time.After(time.Duration(timeoutMs) * time.Millisecond):
		return value.PointValue{}, false
	}
}

// Commit is a no-op for core NATS pub/sub (no server-side ack cursor to
// advance); kept so a future JetStream backend can implement real
// ack-commit semantics behind the same interface.
func (r *Receiver) Commit() error { return nil }

// Purge drains and discards every message currently buffered, returning
// the count removed.
func (r *Receiver) Purge() (int, error) {
	n := 0
	for {
		select {
		case <-r.ch:
			n++
		default:
			return n, nil
		}
	}
}

// Unsubscribe tears down the subscription.
func (r *Receiver) Unsubscribe() error {
	return r.sub.Unsubscribe()
}
