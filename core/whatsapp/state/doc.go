// Package state keeps the short-lived conversational sessions of the bot.
// A session tracks one in-flight multi-step flow per chat and expires after
// a fixed period of inactivity.
package state
