package notify

import (
	"log"
	"os/exec"
)

// MessageType identifies a user-facing toast
type MessageType int

const (
	MsgPaletteGenerated MessageType = iota
	MsgPaletteSaved
	MsgPaletteDuplicate
	MsgCopied
	MsgGenerationFailed
	MsgConfigReloaded
)

// Message is a resolved toast
type Message struct {
	Title   string
	Body    string
	IsError bool
}

// MessageDef describes a toast and the config key that can override it
type MessageDef struct {
	Type         MessageType
	ConfigKey    string
	DefaultTitle string
	DefaultBody  string
	IsError      bool
}

var MessageDefs = []MessageDef{
	{MsgPaletteGenerated, "palette_generated", "Hueprompt", "Palette ready", false},
	{MsgPaletteSaved, "palette_saved", "Hueprompt", "Palette saved", false},
	{MsgPaletteDuplicate, "palette_duplicate", "Hueprompt", "Palette already saved", false},
	{MsgCopied, "copied", "Hueprompt", "Copied to clipboard", false},
	{MsgGenerationFailed, "generation_failed", "Hueprompt", "Could not generate a palette", true},
	{MsgConfigReloaded, "config_reloaded", "Hueprompt", "Config Reloaded", false},
}

type Notifier interface {
	Notify(title, message string)
	Error(msg string)
}

// New returns the notifier for a config type ("desktop", "log", anything else is silent)
func New(kind string) Notifier {
	switch kind {
	case "desktop":
		return Desktop{}
	case "log":
		return Log{}
	default:
		return Nop{}
	}
}

type Desktop struct{}

func (Desktop) Notify(title, message string) {
	cmd := exec.Command("notify-send", "-a", "Hueprompt", title, message)
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

func (Desktop) Error(msg string) {
	cmd := exec.Command("notify-send", "-a", "Hueprompt", "-u", "critical", "Hueprompt Error", msg)
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to send error notification: %v", err)
	}
}

// Log writes toasts to the standard logger
type Log struct{}

func (Log) Notify(title, message string) {
	log.Printf("%s: %s", title, message)
}

func (Log) Error(msg string) {
	log.Printf("Hueprompt Error: %s", msg)
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) Notify(title, message string) {}
func (Nop) Error(msg string)             {}

// Messenger sends typed toasts through a Notifier using resolved message texts
type Messenger struct {
	notifier Notifier
	messages map[MessageType]Message
}

func NewMessenger(n Notifier, messages map[MessageType]Message) *Messenger {
	if n == nil {
		n = Nop{}
	}
	if messages == nil {
		messages = DefaultMessages()
	}
	return &Messenger{notifier: n, messages: messages}
}

// DefaultMessages returns the built-in text for every message type
func DefaultMessages() map[MessageType]Message {
	result := make(map[MessageType]Message, len(MessageDefs))
	for _, def := range MessageDefs {
		result[def.Type] = Message{Title: def.DefaultTitle, Body: def.DefaultBody, IsError: def.IsError}
	}
	return result
}

// Send delivers the toast for t; detail, when set, is appended to the body
func (m *Messenger) Send(t MessageType, detail string) {
	msg, ok := m.messages[t]
	if !ok {
		return
	}
	body := msg.Body
	if detail != "" {
		body += ": " + detail
	}
	if msg.IsError {
		m.notifier.Error(body)
		return
	}
	m.notifier.Notify(msg.Title, body)
}
