package notifier

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	config "github.com/jimitchavdadev/ecommerce-platform/configs"
)

// Notifier sends order-confirmation messages after a payment is verified.
// Both channels are best effort and run off the request path.
type Notifier struct {
	email config.EmailConfig
	sms   config.AfricaTalkingConfig
	log   *zap.SugaredLogger
}

func New(email config.EmailConfig, sms config.AfricaTalkingConfig, log *zap.SugaredLogger) *Notifier {
	return &Notifier{email: email, sms: sms, log: log}
}

func (n *Notifier) SendPaymentEmail(ctx context.Context, recipientEmail, customerName, orderID string, totalAmount float64) error {
	if n.email.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(n.email.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(n.email.AWSAccessKeyID, n.email.AWSSecretAccessKey, "")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	subject := fmt.Sprintf("Order %s Payment Confirmed", orderID)
	totalStr := strconv.FormatFloat(totalAmount, 'f', 2, 64)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>We have received your payment for order %s.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order ID: %s</li>
                <li>Amount Paid: INR %s</li>
            </ul>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>Your E-commerce Team</p>
        </body>
        </html>`, customerName, orderID, orderID, totalStr)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nWe have received your payment for order %s.\n\n"+
			"Order Details:\nOrder ID: %s\nAmount Paid: INR %s\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nYour E-commerce Team",
		customerName, orderID, orderID, totalStr)

	input := &ses.SendEmailInput{
		Source: aws.String(n.email.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err = client.SendEmail(ctx, input); err != nil {
		n.log.Errorw("payment confirmation email failed", "order_id", orderID, "to", recipientEmail, "err", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.log.Infow("payment confirmation email sent", "order_id", orderID, "to", recipientEmail)
	return nil
}
