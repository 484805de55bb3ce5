// Package alerts implements the alert broker at the center of the duplicate monitor.
//
// When the messages feature flags a duplicate, an alert is created here and
// moves through a one-way lifecycle: pending (waiting for a human), replied
// (an operator submitted a response), delivered (the reply reached the
// originating chat). Both transitions are guarded so repeated or out-of-order
// requests report applied=false instead of corrupting state.
//
// # HTTP Endpoints
//
//   - POST /api/alerts                : create an alert (monitor -> broker)
//   - GET  /api/alerts                : list pending alerts (notifier polls)
//   - POST /api/replies               : submit a reply for an alert
//   - GET  /api/replied_alerts        : list replied alerts (monitor polls)
//   - POST /api/alerts/{id}/delivered : mark an alert delivered
//
// # Queue Fanout
//
// With a Redis queue configured, each created alert id is also published for
// the notifier to consume; persistence always happens first, so a queue outage
// degrades to polling rather than losing alerts.
package alerts
