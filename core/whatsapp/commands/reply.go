package commands

import "github.com/m3rciful/shopbot/core/whatsapp/format"

// Reply is the router output. It is either a TextReply or a ButtonsReply.
type Reply interface {
	isReply()
}

// TextReply is a plain text message.
type TextReply struct {
	Text string
}

// Button is one selectable option of a ButtonsReply.
type Button struct {
	ID    string
	Label string
}

// ButtonsReply is an interactive message with reply buttons.
type ButtonsReply struct {
	Body    string
	Buttons []Button
	Header  string
	Footer  string
}

func (TextReply) isReply()    {}
func (ButtonsReply) isReply() {}

func menuReply(body string) ButtonsReply {
	opts := format.MenuOptions()
	buttons := make([]Button, 0, len(opts))
	for _, o := range opts {
		buttons = append(buttons, Button{ID: o.ID, Label: o.Label})
	}
	return ButtonsReply{
		Body:    body,
		Buttons: buttons,
		Header:  format.MenuHeader,
		Footer:  format.MenuFooter,
	}
}
