package session

import (
	"errors"

	"github.com/TobiSchelling/climatenews/internal/agent"
)

// Variant selects how a notice is styled.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a short user-facing message about the outcome of an action.
type Notice struct {
	Title       string
	Description string
	Variant     Variant
}

// Info builds a non-error notice.
func Info(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

// analysisError marks a failure of the article analysis call.
type analysisError struct{ err error }

func (e *analysisError) Error() string { return e.err.Error() }
func (e *analysisError) Unwrap() error { return e.err }

// NoticeFor maps an error returned by Workspace or Assistant to the notice
// shown to the user.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, ErrArticleRequired):
		return Notice{Title: "Article Required", Description: "Please paste an article to analyze", Variant: VariantDestructive}
	case errors.Is(err, ErrMessageRequired):
		return Notice{Title: "Message Required", Description: "Please enter a message for the assistant", Variant: VariantDestructive}
	case agent.IsQuotaExceeded(err):
		return Notice{Title: "API Limit Reached", Description: err.Error(), Variant: VariantDestructive}
	}

	var ae *analysisError
	if errors.As(err, &ae) {
		return Notice{Title: "Analysis Error", Description: messageOr(ae.err, "Failed to analyze article"), Variant: VariantDestructive}
	}
	return Notice{Title: "Error", Description: messageOr(err, "Failed to get response"), Variant: VariantDestructive}
}

func messageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
