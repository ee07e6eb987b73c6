package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mannyandcelesti/rsvp-api/internal/rsvp"
)

// TwilioClient sends SMS through the Twilio REST API.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	endpoint   string
}

func NewTwilioClient(accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", accountSID),
	}
}

func (c *TwilioClient) SendMessage(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", FormatE164(to))
	form.Set("From", c.from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// FormatE164 normalizes a phone number for Twilio. Ten digits are assumed
// to be US numbers.
func FormatE164(phone string) string {
	digits := rsvp.NormalizePhone(phone)
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return "+" + digits
	}
}
