package state

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelError
)

// Notification represents a single status message with a severity level.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState keeps the latest user-facing messages, newest last.
type NotificationState struct {
	notifications []Notification
	limit         int
}

// NewNotificationState keeps at most limit notifications.
func NewNotificationState(limit int) *NotificationState {
	return &NotificationState{limit: max(limit, 1)}
}

// Add appends a notification, dropping the oldest past the limit.
func (s *NotificationState) Add(level NotificationLevel, message string) {
	s.notifications = append(s.notifications, Notification{Level: level, Message: message})
	if over := len(s.notifications) - s.limit; over > 0 {
		s.notifications = s.notifications[over:]
	}
}

func (s *NotificationState) Info(message string) { s.Add(LevelInfo, message) }

func (s *NotificationState) Error(message string) { s.Add(LevelError, message) }

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// All returns all current notifications.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}

// Latest returns the newest notification.
func (s *NotificationState) Latest() (Notification, bool) {
	if len(s.notifications) == 0 {
		return Notification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}
