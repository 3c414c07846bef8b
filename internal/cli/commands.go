package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/pigeon-go/internal/config"
	"github.com/pfrederiksen/pigeon-go/pigeon"
)

// toParams converts --param/--option flag values to a request map.
func toParams(m map[string]string) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// newBatchCmd creates a "batch <file>" command posting the file's entries with send.
func (a *app) newBatchCmd(short string, send func(c *pigeon.Client, ctx context.Context, requests []pigeon.Payload) (pigeon.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: short,
		Long:  short + ".\nThe file is a YAML or JSON list of request objects; use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := config.LoadBatchFile(args[0])
			if err != nil {
				return err
			}
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return send(c, ctx, requests)
			})
		},
	}
}

func (a *app) newMailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Send email",
	}

	var msg pigeon.MailMessage
	send := &cobra.Command{
		Use:   "send",
		Short: "Send an email with inline content",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return c.SendMail(ctx, msg)
			})
		},
	}
	send.Flags().StringVar(&msg.Recipient, "to", "", "Recipient email address (required)")
	send.Flags().StringVar(&msg.Subject, "subject", "", "Subject (required)")
	send.Flags().StringVar(&msg.Content, "content", "", "Body (required)")
	send.Flags().StringVar(&msg.Driver, "driver", "", "Delivery driver")
	send.MarkFlagRequired("to")
	send.MarkFlagRequired("subject")
	send.MarkFlagRequired("content")

	var tpl pigeon.MailTemplate
	var params map[string]string
	template := &cobra.Command{
		Use:   "template",
		Short: "Send an email rendered from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl.Params = toParams(params)
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return c.SendMailByTemplate(ctx, tpl)
			})
		},
	}
	template.Flags().StringVar(&tpl.Recipient, "to", "", "Recipient email address (required)")
	template.Flags().StringVar(&tpl.Template, "template", "", "Template name (required)")
	template.Flags().StringToStringVar(&params, "param", nil, "Template parameter as key=value (repeatable)")
	template.Flags().StringVar(&tpl.Driver, "driver", "", "Delivery driver")
	template.MarkFlagRequired("to")
	template.MarkFlagRequired("template")

	cmd.AddCommand(send, template, a.newBatchCmd("Send a batch of emails", (*pigeon.Client).SendBatchMail))
	return cmd
}

func (a *app) newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Send SMS",
	}

	var msg pigeon.TextMessage
	send := &cobra.Command{
		Use:   "send",
		Short: "Send an SMS with inline content",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return c.SendText(ctx, msg)
			})
		},
	}
	send.Flags().StringVar(&msg.Recipient, "to", "", "Recipient phone number (required)")
	send.Flags().StringVar(&msg.Content, "content", "", "Message (required)")
	send.Flags().StringVar(&msg.Driver, "driver", "", "Delivery driver")
	send.MarkFlagRequired("to")
	send.MarkFlagRequired("content")

	var tpl pigeon.TextTemplate
	var params map[string]string
	template := &cobra.Command{
		Use:   "template",
		Short: "Send an SMS rendered from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl.Params = toParams(params)
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return c.SendTextByTemplate(ctx, tpl)
			})
		},
	}
	template.Flags().StringVar(&tpl.Recipient, "to", "", "Recipient phone number (required)")
	template.Flags().StringVar(&tpl.Template, "template", "", "Template name (required)")
	template.Flags().StringToStringVar(&params, "param", nil, "Template parameter as key=value (repeatable)")
	template.Flags().StringVar(&tpl.Driver, "driver", "", "Delivery driver")
	template.MarkFlagRequired("to")
	template.MarkFlagRequired("template")

	cmd.AddCommand(send, template, a.newBatchCmd("Send a batch of SMS", (*pigeon.Client).SendBatchText))
	return cmd
}

func (a *app) newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send push notifications",
	}

	var n pigeon.Notification
	var options map[string]string
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a push notification with inline content",
		RunE: func(cmd *cobra.Command, args []string) error {
			n.Options = toParams(options)
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return c.SendNotification(ctx, n)
			})
		},
	}
	send.Flags().StringVar(&n.Target, "target", "token", "Recipient type")
	send.Flags().StringVar(&n.Recipient, "to", "", "Recipient, e.g. a device token (required)")
	send.Flags().StringVar(&n.Subject, "subject", "", "Title (required)")
	send.Flags().StringVar(&n.Content, "content", "", "Body (required)")
	send.Flags().StringToStringVar(&options, "option", nil, "Provider option as key=value (repeatable)")
	send.Flags().StringVar(&n.Driver, "driver", "", "Delivery driver")
	send.MarkFlagRequired("to")
	send.MarkFlagRequired("subject")
	send.MarkFlagRequired("content")

	var tpl pigeon.NotificationTemplate
	var params, tplOptions map[string]string
	template := &cobra.Command{
		Use:   "template",
		Short: "Send a push notification rendered from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl.Params = toParams(params)
			tpl.Options = toParams(tplOptions)
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return c.SendNotificationByTemplate(ctx, tpl)
			})
		},
	}
	template.Flags().StringVar(&tpl.Target, "target", "token", "Recipient type")
	template.Flags().StringVar(&tpl.Recipient, "to", "", "Recipient, e.g. a device token (required)")
	template.Flags().StringVar(&tpl.Template, "template", "", "Template name (required)")
	template.Flags().StringToStringVar(&params, "param", nil, "Template parameter as key=value (repeatable)")
	template.Flags().StringToStringVar(&tplOptions, "option", nil, "Provider option as key=value (repeatable)")
	template.Flags().StringVar(&tpl.Driver, "driver", "", "Delivery driver")
	template.MarkFlagRequired("to")
	template.MarkFlagRequired("template")

	cmd.AddCommand(send, template, a.newBatchCmd("Send a batch of push notifications", (*pigeon.Client).SendBatchNotification))
	return cmd
}

func (a *app) newOTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Issue and verify one-time passwords",
	}

	cmd.AddCommand(
		a.newOTPSendCmd("mail", "Send an OTP by email", (*pigeon.Client).SendOTPViaMail),
		a.newOTPSendCmd("text", "Send an OTP by SMS", (*pigeon.Client).SendOTPViaText),
		a.newOTPVerifyCmd(),
	)
	return cmd
}

func (a *app) newOTPSendCmd(use, short string, send func(c *pigeon.Client, ctx context.Context, r pigeon.OTPRequest) (pigeon.Result, error)) *cobra.Command {
	var req pigeon.OTPRequest
	var params map[string]string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Params = toParams(params)
			return a.runSend(cmd, func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error) {
				return send(c, ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.Recipient, "to", "", "Recipient (required)")
	cmd.Flags().StringVar(&req.Template, "template", "", "Template name; the service default is used when empty")
	cmd.Flags().StringToStringVar(&params, "param", nil, "Template parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&req.Remark, "remark", "", "Free-form remark echoed back by the service")
	cmd.Flags().StringVar(&req.Driver, "driver", "", "Delivery driver")
	cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) newOTPVerifyCmd() *cobra.Command {
	var v pigeon.OTPVerification

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an OTP",
		Long: `Verify an OTP.
Exits with status 2 when the code is invalid or expired.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			outcome, err := c.VerifyOTP(cmd.Context(), v)
			if err != nil {
				return fmt.Errorf("%s: %w", cmd.CommandPath(), err)
			}

			result := &OutputResult{
				Operation: cmd.CommandPath(),
				SentAt:    time.Now().UTC(),
				Outcome:   outcome.String(),
			}
			if err := WriteOutput(cmd.OutOrStdout(), result, OutputFormat(a.format), a.verbose); err != nil {
				return err
			}

			if outcome == pigeon.NotVerified {
				return ErrNotVerified
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&v.Recipient, "to", "", "Recipient the OTP was sent to (required)")
	cmd.Flags().StringVar(&v.OTP, "otp", "", "Code to verify (required)")
	cmd.Flags().BoolVar(&v.Strict, "strict", false, "Also match reference and remark")
	cmd.Flags().StringVar(&v.Reference, "reference", "", "Reference returned when the OTP was issued")
	cmd.Flags().StringVar(&v.Remark, "remark", "", "Remark given when the OTP was issued")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("otp")
	return cmd
}
