// Package audit implements async dispatch of classification-only diagnostic
// events for rejected CSRF values.
//
// # Components
//
//   - [Sink] — interface for event consumers (the root package bridges its
//     public sinks onto it).
//   - [Dispatcher] — buffered async relay with drop-if-full / block-if-full
//     semantics and a dropped-event counter.
//   - [Event] — structured record: event id, timestamp, backend, value kind,
//     and rejection reason. Never secret or key material.
//
// # What this package must NOT do
//
//   - Decide which events to emit — that belongs to the protection core.
//   - Import goCsrf or perform I/O beyond what a caller-supplied Sink does.
package audit
