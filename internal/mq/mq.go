// Package mq publishes inventory change events to a broker. Publishing is
// best-effort: a failed publish is logged by the caller and never fails the
// write that triggered it.
package mq

import "context"

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// MQ wraps a backend with a stable API.
type MQ struct {
	backend Backend
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

// Publish sends a message to the named channel.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, channel, data, attrs)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}

// NoopBackend discards every message. It is used when no broker is
// configured.
type NoopBackend struct{}

func (NoopBackend) Publish(_ context.Context, _ string, _ []byte, _ map[string]string) (string, error) {
	return "", nil
}

func (NoopBackend) Close() error {
	return nil
}
