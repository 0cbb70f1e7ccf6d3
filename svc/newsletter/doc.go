// Package newsletter implements the subscription lifecycle and newsletter
// delivery.
//
// A visitor signs up with a name and an email address. Signup stores a
// pending subscriber and a confirmation token in one transaction and only
// commits once the confirmation email was handed to the mail provider, so a
// failed send leaves nothing behind. Following the link confirms the
// subscriber; confirming twice is harmless. Publish sends an issue to every
// confirmed subscriber, skipping stored records that no longer validate and
// stopping at the first transport failure.
//
// Persistence is behind the Store interface. The postgres subpackage is the
// production implementation; MemoryStore serves tests and local runs.
package newsletter
