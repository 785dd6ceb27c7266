// Package queue defines mail event payloads exchanged over the message
// broker and the background consumer that delivers them.
package queue

// MailQueueName is the durable queue carrying outgoing code mails.
const MailQueueName = "mail.codes"

// Mail event kinds.
const (
	MailVerification = "verification"
	MailRestore      = "restore"
)

// CodeMailEvent is published whenever a verification or restore code must
// reach a user. Handlers publish it fire-and-forget: the primary state
// mutation (registration, restore request) succeeds even when the broker
// is down, and the caller is told via a success-with-caveat message.
type CodeMailEvent struct {
	Kind     string `json:"kind"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
	IssuedAt string `json:"issued_at"`
}
