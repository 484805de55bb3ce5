// Package notifier announces pending duplicate alerts to admin chats over
// the Telegram Bot API.
//
// # Delivery
//
// Alerts reach the worker two ways: ids consumed from the optional Redis
// queue, and a poll sweep over pending alerts that also catches anything
// the queue missed. Message text is escaped for MarkdownV2 and truncated
// to a short preview before sending.
package notifier
