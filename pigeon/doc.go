// Package pigeon is a client for the Pigeon notification API.
//
// The client sends email, SMS text and push notifications, either with
// inline content or rendered server-side from a named template, and issues
// and verifies one-time passwords. Every operation is a single JSON POST to
// a fixed endpoint; there is no retry, caching or batching logic.
//
// Authentication uses a bearer token:
//
//	client := pigeon.NewClient(os.Getenv("PIGEON_TOKEN"))
//	res, err := client.SendMail(ctx, pigeon.MailMessage{
//	    Recipient: "bob@example.com",
//	    Subject:   "Hello",
//	    Content:   "Hi Bob",
//	})
//
// Request fields left at their zero value are omitted from the wire payload
// (see Payload.Compact).
package pigeon
