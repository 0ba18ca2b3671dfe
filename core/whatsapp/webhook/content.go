package webhook

// ContentKind tells typed text apart from a button selection.
type ContentKind string

const (
	KindText   ContentKind = "text"
	KindButton ContentKind = "button"
)

// Content is the input the command router acts on.
type Content struct {
	Kind  ContentKind
	Value string
}

// ExtractContent returns the text or selected button id of ev.
// It reports false for unsupported kinds and for empty bodies.
func ExtractContent(ev Event) (Content, bool) {
	md := ev.MessageData
	if md == nil {
		return Content{}, false
	}
	var c Content
	switch md.TypeMessage {
	case MessageText:
		if md.TextMessageData != nil {
			c = Content{Kind: KindText, Value: md.TextMessageData.TextMessage}
		}
	case MessageExtendedText:
		if md.ExtendedTextMessageData != nil {
			c = Content{Kind: KindText, Value: md.ExtendedTextMessageData.Text}
		}
	case MessageTemplateButton:
		if md.TemplateButtonReplyMessage != nil {
			c = Content{Kind: KindButton, Value: md.TemplateButtonReplyMessage.SelectedID}
		}
	case MessageButtonsReply:
		if md.ButtonsResponseMessage != nil {
			c = Content{Kind: KindButton, Value: md.ButtonsResponseMessage.SelectedButtonID}
		}
	}
	if c.Value == "" {
		return Content{}, false
	}
	return c, true
}
