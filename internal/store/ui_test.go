package store

import (
	"net/http"
	"testing"
	"time"
)

func TestAddNotificationDefaults(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())

	id := s.UI.AddNotification(NotifySuccess, "Application submitted")
	if id == "" {
		t.Fatal("empty notification id")
	}

	st := s.UI.State()
	if len(st.Notifications) != 1 {
		t.Fatalf("notifications = %+v", st.Notifications)
	}
	n := st.Notifications[0]
	if n.ID != id || n.Type != NotifySuccess || n.Message != "Application submitted" {
		t.Fatalf("notification = %+v", n)
	}
	if !n.AutoHide || n.Duration != 5*time.Second {
		t.Fatalf("defaults = autoHide %v, duration %s", n.AutoHide, n.Duration)
	}
}

func TestRemoveNotificationKeepsOthers(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())

	first := s.UI.AddNotification(NotifyInfo, "one")
	second := s.UI.AddNotification(NotifyError, "two")

	before := s.UI.State()
	s.UI.RemoveNotification(first)

	st := s.UI.State()
	if len(st.Notifications) != 1 || st.Notifications[0].ID != second {
		t.Fatalf("notifications = %+v", st.Notifications)
	}
	if len(before.Notifications) != 2 {
		t.Fatal("earlier snapshot was mutated by removal")
	}

	s.UI.ClearNotifications()
	if st := s.UI.State(); len(st.Notifications) != 0 {
		t.Fatalf("notifications after clear = %+v", st.Notifications)
	}
}

func TestNotificationIDsAreUnique(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := s.UI.AddNotification(NotifyInfo, "n")
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestToggleTheme(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())

	if st := s.UI.State(); st.Theme != ThemeLight {
		t.Fatalf("initial theme = %s", st.Theme)
	}
	s.UI.ToggleTheme()
	if st := s.UI.State(); st.Theme != ThemeDark {
		t.Fatalf("theme = %s", st.Theme)
	}
	s.UI.ToggleTheme()
	if st := s.UI.State(); st.Theme != ThemeLight {
		t.Fatalf("theme = %s", st.Theme)
	}
	s.UI.SetTheme(ThemeDark)
	if st := s.UI.State(); st.Theme != ThemeDark {
		t.Fatalf("theme = %s", st.Theme)
	}
}

func TestSidebarToggle(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())

	s.UI.ToggleSidebar()
	if st := s.UI.State(); !st.SidebarOpen {
		t.Fatal("sidebar closed after toggle")
	}
	s.UI.SetSidebarOpen(false)
	if st := s.UI.State(); st.SidebarOpen {
		t.Fatal("sidebar open after SetSidebarOpen(false)")
	}
}
