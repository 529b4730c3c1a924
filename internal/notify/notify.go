// Package notify sends transactional email to users.
package notify

import (
	"context"
	"fmt"
	"html"
)

// Notifier sends the welcome message to a newly created user.
type Notifier interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// WelcomeMessage renders the fixed welcome template for name.
func WelcomeMessage(name string) Message {
	return Message{
		Subject: "Welcome to Crossroads!",
		Text:    fmt.Sprintf("Hello %s, welcome to Crossroads! Your profile has been created successfully.", name),
		HTML:    fmt.Sprintf("<h1>Welcome, %s!</h1><p>Your profile is now active.</p>", html.EscapeString(name)),
	}
}
