package pigeon

import (
	"context"
	"net/http"
)

const (
	pathOTPMail   = "/api/otp/mail"
	pathOTPText   = "/api/otp/text"
	pathOTPVerify = "/api/otp/verify"
)

// OTPRequest issues a one-time password to Recipient. Template is optional;
// the service falls back to its default OTP template. Remark is echoed back
// in the response and can be matched on verification.
type OTPRequest struct {
	Recipient string
	Template  string
	Params    map[string]any
	Remark    string
	Driver    string
}

// Payload returns the compacted request body.
func (r OTPRequest) Payload() Payload {
	return Payload{
		"recipient": r.Recipient,
		"template":  r.Template,
		"params":    r.Params,
		"remark":    r.Remark,
		"driver":    r.Driver,
	}.Compact()
}

// OTPVerification checks a code. In strict mode the service also matches
// Reference (returned when the OTP was issued) and Remark.
type OTPVerification struct {
	Recipient string
	OTP       string
	Strict    bool
	Reference string
	Remark    string
}

// Payload returns the compacted request body.
func (v OTPVerification) Payload() Payload {
	return Payload{
		"recipient": v.Recipient,
		"otp":       v.OTP,
		"strict":    v.Strict,
		"reference": v.Reference,
		"remark":    v.Remark,
	}.Compact()
}

// Outcome is the result of an OTP verification.
type Outcome int

const (
	// VerifyFailed means the check could not be performed; the accompanying
	// error says why.
	VerifyFailed Outcome = iota
	// Verified means the code was accepted.
	Verified
	// NotVerified means the code was wrong or expired.
	NotVerified
)

func (o Outcome) String() string {
	switch o {
	case Verified:
		return "verified"
	case NotVerified:
		return "not verified"
	default:
		return "failed"
	}
}

// SendOTPViaMail issues an OTP by email.
func (c *Client) SendOTPViaMail(ctx context.Context, r OTPRequest) (Result, error) {
	return c.post(ctx, pathOTPMail, r.Payload())
}

// SendOTPViaText issues an OTP by SMS.
func (c *Client) SendOTPViaText(ctx context.Context, r OTPRequest) (Result, error) {
	return c.post(ctx, pathOTPText, r.Payload())
}

// VerifyOTP checks a code. A 400 from the service is a routine rejection and
// yields NotVerified with a nil error; every other failure yields
// VerifyFailed and the error.
func (c *Client) VerifyOTP(ctx context.Context, v OTPVerification) (Outcome, error) {
	if _, err := c.send(ctx, pathOTPVerify, v.Payload()); err != nil {
		if code, ok := StatusCode(err); ok && code == http.StatusBadRequest {
			c.logFailure(c.logger.Debug(), pathOTPVerify, err)
			return NotVerified, nil
		}
		c.logFailure(c.logger.Warn(), pathOTPVerify, err)
		return VerifyFailed, err
	}
	return Verified, nil
}
