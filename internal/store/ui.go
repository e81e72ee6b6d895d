package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const defaultNotificationDuration = 5 * time.Second

type Notification struct {
	ID       string
	Type     NotificationType
	Message  string
	AutoHide bool
	Duration time.Duration
}

// UIState has no server interaction; it lives here because it shares the
// store's composition and subscription mechanism.
type UIState struct {
	Notifications   []Notification
	IsGlobalLoading bool
	SidebarOpen     bool
	Theme           Theme
}

type UISlice struct {
	mu     sync.Mutex
	state  UIState
	notify func()
}

func newUISlice(notify func()) *UISlice {
	return &UISlice{
		state:  UIState{Theme: ThemeLight},
		notify: notify,
	}
}

func (s *UISlice) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddNotification queues a notification, generating its id and defaulting
// auto-hide to true with a 5 second duration. The id is returned so the
// caller can dismiss it early.
func (s *UISlice) AddNotification(kind NotificationType, message string) string {
	n := Notification{
		ID:       uuid.NewString(),
		Type:     kind,
		Message:  message,
		AutoHide: true,
		Duration: defaultNotificationDuration,
	}
	s.mu.Lock()
	s.state.Notifications = append(s.state.Notifications, n)
	s.mu.Unlock()
	s.notify()
	return n.ID
}

func (s *UISlice) RemoveNotification(id string) {
	s.mu.Lock()
	kept := make([]Notification, 0, len(s.state.Notifications))
	for _, n := range s.state.Notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.state.Notifications = kept
	s.mu.Unlock()
	s.notify()
}

func (s *UISlice) ClearNotifications() {
	s.mu.Lock()
	s.state.Notifications = nil
	s.mu.Unlock()
	s.notify()
}

func (s *UISlice) SetGlobalLoading(loading bool) {
	s.mu.Lock()
	s.state.IsGlobalLoading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *UISlice) ToggleSidebar() {
	s.mu.Lock()
	s.state.SidebarOpen = !s.state.SidebarOpen
	s.mu.Unlock()
	s.notify()
}

func (s *UISlice) SetSidebarOpen(open bool) {
	s.mu.Lock()
	s.state.SidebarOpen = open
	s.mu.Unlock()
	s.notify()
}

func (s *UISlice) ToggleTheme() {
	s.mu.Lock()
	if s.state.Theme == ThemeLight {
		s.state.Theme = ThemeDark
	} else {
		s.state.Theme = ThemeLight
	}
	s.mu.Unlock()
	s.notify()
}

func (s *UISlice) SetTheme(theme Theme) {
	s.mu.Lock()
	s.state.Theme = theme
	s.mu.Unlock()
	s.notify()
}
