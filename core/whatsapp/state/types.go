package state

import "time"

// Flow names a multi-step interaction.
type Flow string

// Step is a position inside a flow.
type Step string

const (
	// FlowAddProduct is the add-product wizard.
	FlowAddProduct Flow = "addProduct"

	StepName  Step = "name"
	StepPrice Step = "price"
	StepStock Step = "stock"
)

// Data accumulates the values collected by the add-product wizard.
type Data struct {
	Name  *string
	Price *string // always formatted with two decimals
	Stock *int
}

// Session is the state of one conversation.
type Session struct {
	ChatID    string
	Flow      Flow
	Step      Step
	Data      Data
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Clone returns a deep copy so callers cannot mutate stored sessions in place.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Data.Name != nil {
		v := *s.Data.Name
		c.Data.Name = &v
	}
	if s.Data.Price != nil {
		v := *s.Data.Price
		c.Data.Price = &v
	}
	if s.Data.Stock != nil {
		v := *s.Data.Stock
		c.Data.Stock = &v
	}
	return &c
}

// Store maps a chat id to its live session.
type Store interface {
	// Get returns the session when present and not expired. Expired entries
	// are removed on access.
	Get(chatID string) (*Session, bool)
	// Set stores the session and pushes its expiry forward by the timeout.
	Set(chatID string, s *Session)
	// Delete removes the session; absent ids are ignored.
	Delete(chatID string)
	// Cleanup removes every expired session and reports how many were removed.
	Cleanup() int
	// CreateSession builds a fresh add-product session without storing it.
	CreateSession(chatID string) *Session
	// Lock serialises work on one chat id until the returned func is called.
	Lock(chatID string) (unlock func())
}
