package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type smsResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

func (n *Notifier) SendPaymentSMS(ctx context.Context, toPhoneNumber, orderID string, totalAmount float64) error {
	if toPhoneNumber == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	message := fmt.Sprintf("Payment received for order %s. Total: INR %.2f. Thank you for shopping with us!", orderID, totalAmount)

	data := url.Values{}
	data.Set("username", n.sms.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", n.sms.SenderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.sms.SMSURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", n.sms.APIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		n.log.Errorw("payment confirmation SMS failed", "order_id", orderID, "to", toPhoneNumber, "err", err)
		return fmt.Errorf("SMS send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var smsResp smsResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp); decodeErr == nil {
			n.log.Errorw("SMS API returned error", "order_id", orderID, "status", resp.StatusCode, "message", smsResp.SMSMessageData.Message)
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}

	var smsResp smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	n.log.Infow("payment confirmation SMS sent", "order_id", orderID, "to", toPhoneNumber)
	return nil
}
