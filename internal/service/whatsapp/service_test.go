package whatsapp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedbook/internal/config"
	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/service/commands"
	client "github.com/mamadbah2/feedbook/pkg/clients/whatsapp"
)

type recordingClient struct {
	sent []client.SendTextMessageRequest
}

func (c *recordingClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	c.sent = append(c.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type stubDispatcher struct {
	reply string
	err   error
	got   []models.Command
}

func (d *stubDispatcher) HandleCommand(_ context.Context, cmd models.Command, _ string) (string, error) {
	d.got = append(d.got, cmd)
	return d.reply, d.err
}

func textMessage(from, body string) models.InboundMessage {
	return models.InboundMessage{From: from, ID: "wamid." + from, Type: "text", Text: &models.TextContent{Body: body}}
}

func payloadWith(msgs ...models.InboundMessage) models.WebhookPayload {
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{Field: "messages", Value: models.WebhookValue{Messages: msgs}}},
		}},
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "s3cret"}, &recordingClient{}, &stubDispatcher{}, nil)

	challenge, err := svc.VerifyWebhookToken("subscribe", "s3cret", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", challenge)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "42")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("unsubscribe", "s3cret", "42")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("", "", "")
	assert.Error(t, err)
}

func TestHandleWebhookRepliesToSender(t *testing.T) {
	wa := &recordingClient{}
	disp := &stubDispatcher{reply: "Feed prices (per kg)"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, disp, nil)

	button := models.InboundMessage{
		From: "919811111111", Type: "interactive",
		Interactive: &models.InteractiveContent{Type: "button_reply", ButtonReply: &models.ReplyValue{ID: "/stock feed"}},
	}
	image := models.InboundMessage{From: "919822222222", Type: "image"}

	err := svc.HandleWebhook(context.Background(), payloadWith(textMessage("919800000000", "/prices"), button, image))
	require.NoError(t, err)

	require.Len(t, disp.got, 2)
	assert.Equal(t, models.CommandPrices, disp.got[0].Type)
	assert.Equal(t, models.CommandStock, disp.got[1].Type)
	require.Len(t, wa.sent, 2)
	assert.Equal(t, "919800000000", wa.sent[0].To)
	assert.Equal(t, "Feed prices (per kg)", wa.sent[0].Body)
}

func TestHandleWebhookExplainsFailures(t *testing.T) {
	wa := &recordingClient{}
	disp := &stubDispatcher{err: fmt.Errorf("%w: unknown category", commands.ErrInvalidArguments)}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, disp, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), payloadWith(textMessage("919800000000", "/stock grain"))))
	require.Len(t, wa.sent, 1)
	assert.Contains(t, wa.sent[0].Body, "Could not read that command.")

	disp.err = fmt.Errorf("load: %w", models.ErrStorageUnavailable)
	require.NoError(t, svc.HandleWebhook(context.Background(), payloadWith(textMessage("919800000000", "/balance"))))
	assert.Contains(t, wa.sent[1].Body, "unavailable")
}

func TestSendOutbound(t *testing.T) {
	wa := &recordingClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, &stubDispatcher{}, nil)

	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "91", Message: "digest", PreviewURL: true})
	require.NoError(t, err)
	require.Len(t, wa.sent, 1)
	assert.True(t, wa.sent[0].PreviewURL)
}
