package adminctl

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/motormarket/adminctl/storage/model"
)

// The password-reset flow has three server steps, none of which require a
// bearer token: request an OTP for an email address, verify the OTP, and
// set the new password for the user id handed out by the first step. The id
// is persisted in the session store because the steps usually happen in
// separate invocations.

type resetRequestResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID string `json:"_id"`
	} `json:"data"`
}

func (c *Client) forgetPassword(ctx context.Context, email string) (id, message string, err error) {
	req, err := c.newRequest(ctx, false)
	if err != nil {
		return "", "", err
	}
	resp, err := req.SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email}).
		Post(c.url(pathForgetPassword))
	if err != nil {
		return "", "", &TransportError{Err: err}
	}
	var rr resetRequestResponse
	if len(resp.Body()) > 0 {
		_ = json.Unmarshal(resp.Body(), &rr)
	}
	if resp.IsError() || (rr.Status != 0 && rr.Status != 200) {
		return "", "", &ServerError{HTTPStatus: resp.StatusCode(), Status: rr.Status, Message: rr.Message}
	}
	return rr.Data.ID, rr.Message, nil
}

func (c *Client) verifyResetOTP(ctx context.Context, email, otp string) (string, error) {
	env, err := c.postJSON(ctx, pathVerifyOTP, map[string]string{"email": email, "otp": otp}, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) changePassword(ctx context.Context, userID, newPassword, confirmPassword string) (string, error) {
	body := map[string]string{
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	env, err := c.postJSON(ctx, pathChangePassword+userID, body, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// RequestPasswordReset starts the reset flow: the server mails an OTP to
// the address and returns the user id needed by the final step, which is
// stored for later.
func (a *AuthState) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	id, message, err := a.client.forgetPassword(ctx, email)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("reset response did not include a user id")
	}
	if err = a.sessions.SetResetUserID(id); err != nil {
		return "", errors.Wrap(err, "persisting reset user id")
	}
	return message, nil
}

// VerifyResetOTP checks the OTP the user received for the given email.
func (a *AuthState) VerifyResetOTP(ctx context.Context, email, otp string) (string, error) {
	return a.client.verifyResetOTP(ctx, email, otp)
}

// CompletePasswordReset sets the new password for the user id stored by
// RequestPasswordReset. The equality check happens locally so a typo never
// reaches the server.
func (a *AuthState) CompletePasswordReset(ctx context.Context, newPassword, confirmPassword string) (string, error) {
	if newPassword != confirmPassword {
		return "", errors.New("new password and confirmation do not match")
	}
	id, err := a.sessions.ResetUserID()
	if err != nil {
		return "", errors.Wrap(err, "reading reset user id")
	}
	if id == "" {
		return "", model.NotFoundErrorFmt("no pending password reset; request one first")
	}
	message, err := a.client.changePassword(ctx, id, newPassword, confirmPassword)
	if err != nil {
		return "", err
	}
	if clearErr := a.sessions.ClearResetUserID(); clearErr != nil {
		return message, errors.Wrap(clearErr, "clearing reset user id")
	}
	return message, nil
}
