package pigeon

import "context"

const (
	pathText      = "/api/send/text"
	pathTextBatch = "/api/send/text/batch"
)

// TextMessage is an SMS with inline content.
type TextMessage struct {
	Recipient string
	Content   string
	Driver    string
}

// Payload returns the compacted request body.
func (m TextMessage) Payload() Payload {
	return Payload{
		"recipient": m.Recipient,
		"content":   m.Content,
		"driver":    m.Driver,
	}.Compact()
}

// TextTemplate is an SMS rendered from a server-side template.
type TextTemplate struct {
	Recipient string
	Template  string
	Params    map[string]any
	Driver    string
}

// Payload returns the compacted request body.
func (m TextTemplate) Payload() Payload {
	return Payload{
		"recipient": m.Recipient,
		"template":  m.Template,
		"params":    m.Params,
		"driver":    m.Driver,
	}.Compact()
}

// SendText sends an SMS.
func (c *Client) SendText(ctx context.Context, m TextMessage) (Result, error) {
	return c.post(ctx, pathText, m.Payload())
}

// SendTextByTemplate sends an SMS rendered from a template.
func (c *Client) SendTextByTemplate(ctx context.Context, m TextTemplate) (Result, error) {
	return c.post(ctx, pathText, m.Payload())
}

// SendBatchText sends several SMS in one request. Entries are forwarded as given.
func (c *Client) SendBatchText(ctx context.Context, requests []Payload) (Result, error) {
	return c.post(ctx, pathTextBatch, requests)
}
