package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bitebook/validate"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// TwilioClient sends order SMS through the Messages API and runs OTPs
// through a Verify service. The generated SDK takes no context, so ctx is
// only checked before each call.
type TwilioClient struct {
	client           *twilio.RestClient
	verifyServiceSID string
	from             string
}

func NewTwilioClient(accountSID, authToken, verifyServiceSID, from string) *TwilioClient {
	return &TwilioClient{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		verifyServiceSID: verifyServiceSID,
		from:             from,
	}
}

// E164 turns a local ten digit number into +91 form. Numbers already
// starting with + pass through.
func E164(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+91" + validate.NormalizePhone(phone)
}

func (c *TwilioClient) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(E164(to))
	params.SetFrom(c.from)
	params.SetBody(body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio message: %w", err)
	}
	return nil
}

func (c *TwilioClient) StartVerification(ctx context.Context, phone string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &verify.CreateVerificationParams{}
	params.SetTo(E164(phone))
	params.SetChannel("sms")

	if _, err := c.client.VerifyV2.CreateVerification(c.verifyServiceSID, params); err != nil {
		return fmt.Errorf("twilio verification: %w", err)
	}
	return nil
}

// CheckVerification reports whether Twilio approved the code. An expired
// or unknown verification counts as a rejection, not a failure.
func (c *TwilioClient) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(E164(phone))
	params.SetCode(code)

	resp, err := c.client.VerifyV2.CreateVerificationCheck(c.verifyServiceSID, params)
	if err != nil {
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) && restErr.Status == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("twilio verification check: %w", err)
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}
