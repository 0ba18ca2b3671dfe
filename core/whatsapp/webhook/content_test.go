package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContent(t *testing.T) {
	cases := []struct {
		name string
		md   *MessageData
		want Content
		ok   bool
	}{
		{
			name: "text",
			md:   &MessageData{TypeMessage: MessageText, TextMessageData: &TextMessageData{TextMessage: "List"}},
			want: Content{Kind: KindText, Value: "List"},
			ok:   true,
		},
		{
			name: "extended text",
			md:   &MessageData{TypeMessage: MessageExtendedText, ExtendedTextMessageData: &ExtendedTextMessageData{Text: "2"}},
			want: Content{Kind: KindText, Value: "2"},
			ok:   true,
		},
		{
			name: "template button",
			md:   &MessageData{TypeMessage: MessageTemplateButton, TemplateButtonReplyMessage: &TemplateButtonReplyMessage{SelectedID: "list"}},
			want: Content{Kind: KindButton, Value: "list"},
			ok:   true,
		},
		{
			name: "buttons response",
			md:   &MessageData{TypeMessage: MessageButtonsReply, ButtonsResponseMessage: &ButtonsResponseMessage{SelectedButtonID: "add"}},
			want: Content{Kind: KindButton, Value: "add"},
			ok:   true,
		},
		{
			name: "empty text",
			md:   &MessageData{TypeMessage: MessageText, TextMessageData: &TextMessageData{}},
		},
		{
			name: "text kind without body",
			md:   &MessageData{TypeMessage: MessageText},
		},
		{
			name: "body of another kind",
			md:   &MessageData{TypeMessage: MessageExtendedText, TextMessageData: &TextMessageData{TextMessage: "hi"}},
		},
		{
			name: "unsupported",
			md:   &MessageData{TypeMessage: "locationMessage"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractContent(Event{MessageData: tc.md})
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
