// Package webhook validates inbound Green API notifications and extracts
// the message content the bot reacts to.
package webhook

// Webhook kinds accepted by Parse.
const (
	TypeIncomingMessage = "incomingMessageReceived"
	TypeOutgoingMessage = "outgoingMessageReceived"
)

// Message kinds with extractable content.
const (
	MessageText           = "textMessage"
	MessageExtendedText   = "extendedTextMessage"
	MessageTemplateButton = "templateButtonsReplyMessage"
	MessageButtonsReply   = "buttonsResponseMessage"
)

// Event is a validated inbound notification.
type Event struct {
	TypeWebhook  string        `json:"typeWebhook" validate:"required,oneof=incomingMessageReceived outgoingMessageReceived"`
	InstanceData *InstanceData `json:"instanceData" validate:"required"`
	Timestamp    int64         `json:"timestamp,omitempty"`
	IDMessage    string        `json:"idMessage" validate:"required"`
	SenderData   *SenderData   `json:"senderData" validate:"required"`
	MessageData  *MessageData  `json:"messageData" validate:"required"`
}

// InstanceData identifies the WhatsApp instance that received the message.
type InstanceData struct {
	IDInstance   *int64 `json:"idInstance" validate:"required"`
	Wid          string `json:"wid" validate:"required"`
	TypeInstance string `json:"typeInstance,omitempty"`
}

// SenderData describes the counterpart of the conversation.
type SenderData struct {
	ChatID     string `json:"chatId" validate:"required"`
	Sender     string `json:"sender" validate:"required"`
	SenderName string `json:"senderName,omitempty"`
	ChatName   string `json:"chatName,omitempty"`
}

// MessageData holds the message kind and at most one kind-specific payload.
type MessageData struct {
	TypeMessage                string                      `json:"typeMessage" validate:"required"`
	TextMessageData            *TextMessageData            `json:"textMessageData,omitempty"`
	ExtendedTextMessageData    *ExtendedTextMessageData    `json:"extendedTextMessageData,omitempty"`
	TemplateButtonReplyMessage *TemplateButtonReplyMessage `json:"templateButtonReplyMessage,omitempty"`
	ButtonsResponseMessage     *ButtonsResponseMessage     `json:"buttonsResponseMessage,omitempty"`
}

// TextMessageData is the body of a plain text message.
type TextMessageData struct {
	TextMessage string `json:"textMessage"`
}

// ExtendedTextMessageData is the body of a text message with link preview or quote.
type ExtendedTextMessageData struct {
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Title       string `json:"title,omitempty"`
}

// TemplateButtonReplyMessage is a reply to a template buttons message.
type TemplateButtonReplyMessage struct {
	StanzaID            string `json:"stanzaId,omitempty"`
	SelectedIndex       int    `json:"selectedIndex,omitempty"`
	SelectedID          string `json:"selectedId"`
	SelectedDisplayText string `json:"selectedDisplayText,omitempty"`
}

// ButtonsResponseMessage is a reply to an interactive buttons message.
type ButtonsResponseMessage struct {
	StanzaID           string `json:"stanzaId,omitempty"`
	SelectedButtonID   string `json:"selectedButtonId"`
	SelectedButtonText string `json:"selectedButtonText,omitempty"`
}

// ChatID returns the sender chat id.
func (e Event) ChatID() string {
	if e.SenderData == nil {
		return ""
	}
	return e.SenderData.ChatID
}

// TypeMessage returns the message kind.
func (e Event) TypeMessage() string {
	if e.MessageData == nil {
		return ""
	}
	return e.MessageData.TypeMessage
}
