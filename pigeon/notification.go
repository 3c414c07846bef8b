package pigeon

import "context"

const (
	pathNotification      = "/api/send/notification"
	pathNotificationBatch = "/api/send/notification/batch"
)

// Notification is a push notification with inline content.
//
// Target selects how Recipient is interpreted by the service (e.g. "token"
// for a device token).
type Notification struct {
	Target    string
	Recipient string
	Subject   string
	Content   string
	Options   map[string]any
	Driver    string
}

// Payload returns the compacted request body.
func (n Notification) Payload() Payload {
	return Payload{
		"target":    n.Target,
		"recipient": n.Recipient,
		"subject":   n.Subject,
		"content":   n.Content,
		"options":   n.Options,
		"driver":    n.Driver,
	}.Compact()
}

// NotificationTemplate is a push notification rendered from a server-side template.
type NotificationTemplate struct {
	Target    string
	Recipient string
	Template  string
	Params    map[string]any
	Options   map[string]any
	Driver    string
}

// Payload returns the compacted request body.
func (n NotificationTemplate) Payload() Payload {
	return Payload{
		"target":    n.Target,
		"recipient": n.Recipient,
		"template":  n.Template,
		"params":    n.Params,
		"options":   n.Options,
		"driver":    n.Driver,
	}.Compact()
}

// SendNotification sends a push notification.
func (c *Client) SendNotification(ctx context.Context, n Notification) (Result, error) {
	return c.post(ctx, pathNotification, n.Payload())
}

// SendNotificationByTemplate sends a push notification rendered from a template.
func (c *Client) SendNotificationByTemplate(ctx context.Context, n NotificationTemplate) (Result, error) {
	return c.post(ctx, pathNotification, n.Payload())
}

// SendBatchNotification sends several push notifications in one request.
// Entries are forwarded as given.
func (c *Client) SendBatchNotification(ctx context.Context, requests []Payload) (Result, error) {
	return c.post(ctx, pathNotificationBatch, requests)
}
