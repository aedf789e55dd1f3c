package service

import "time"

func (s *AuthenticationService) SetClock(now func() time.Time) { s.now = now }

func (l *RateLimiter) SetClock(now func() time.Time) { l.now = now }

func (j *Janitor) SetClock(now func() time.Time) { j.now = now }
