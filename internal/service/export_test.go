package service

import "time"

// SetNow pins the service clock for deterministic tests.
func SetNow(s *DashboardService, f func() time.Time) {
	s.now = f
}
