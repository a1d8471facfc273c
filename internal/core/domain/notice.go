package domain

// NoticeLevel classifies a user-facing notification.
type NoticeLevel string

// Available notice levels.
const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient, non-blocking message for the user.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Info builds an info notice.
func Info(msg string) Notice { return Notice{Level: NoticeInfo, Message: msg} }

// Success builds a success notice.
func Success(msg string) Notice { return Notice{Level: NoticeSuccess, Message: msg} }

// Warning builds a warning notice.
func Warning(msg string) Notice { return Notice{Level: NoticeWarning, Message: msg} }

// Failure builds an error notice.
func Failure(msg string) Notice { return Notice{Level: NoticeError, Message: msg} }

// IsZero reports whether the notice carries no message.
func (n Notice) IsZero() bool {
	return n.Message == ""
}
