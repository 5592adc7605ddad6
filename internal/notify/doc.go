// Package notify delivers contingency notifications to chat channels.
//
// Every channel implements [Notifier]. A channel whose configuration is
// missing reports itself disabled and turns Send into a logged no-op, so a
// run never aborts because one platform is not set up.
//
// Supported platforms:
//
//   - discord:  webhook with an embed (title + description)
//   - slack:    incoming webhook with a JSON text body
//   - telegram: bot API sendMessage with a chat id
//
// [Dispatcher] fans one message out to several channels. Each channel is
// isolated: an error or panic in one is logged and does not stop the others.
package notify
