package pigeon

import "context"

const (
	pathMail      = "/api/send/mail"
	pathMailBatch = "/api/send/mail/batch"
)

// MailMessage is an email with inline content.
type MailMessage struct {
	Recipient string
	Subject   string
	Content   string
	Driver    string
}

// Payload returns the compacted request body.
func (m MailMessage) Payload() Payload {
	return Payload{
		"recipient": m.Recipient,
		"subject":   m.Subject,
		"content":   m.Content,
		"driver":    m.Driver,
	}.Compact()
}

// MailTemplate is an email rendered from a server-side template.
type MailTemplate struct {
	Recipient string
	Template  string
	Params    map[string]any
	Driver    string
}

// Payload returns the compacted request body.
func (m MailTemplate) Payload() Payload {
	return Payload{
		"recipient": m.Recipient,
		"template":  m.Template,
		"params":    m.Params,
		"driver":    m.Driver,
	}.Compact()
}

// SendMail sends an email.
func (c *Client) SendMail(ctx context.Context, m MailMessage) (Result, error) {
	return c.post(ctx, pathMail, m.Payload())
}

// SendMailByTemplate sends an email rendered from a template.
func (c *Client) SendMailByTemplate(ctx context.Context, m MailTemplate) (Result, error) {
	return c.post(ctx, pathMail, m.Payload())
}

// SendBatchMail sends several emails in one request. Entries are forwarded
// as given, without compaction or validation.
func (c *Client) SendBatchMail(ctx context.Context, requests []Payload) (Result, error) {
	return c.post(ctx, pathMailBatch, requests)
}
