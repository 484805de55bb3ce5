// Package queue provides an optional Redis backed work queue for alert ids.
//
// When a queue address is configured, newly created alerts are published to a
// Redis list and the notifier consumes them with BRPOP instead of polling the
// database. Handler failures requeue the id so a flaky Telegram API does not
// drop notifications. Without an address the application falls back to
// database polling and this package stays out of the picture.
package queue
