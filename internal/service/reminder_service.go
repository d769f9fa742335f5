package service

import (
	"context"
	"time"

	"bucketlist/internal/domain"
)

// ReminderService 只读：找出长期未动的列表，不保存任何提醒状态
type ReminderService struct {
	lists domain.ListRepository
	users domain.UserRepository
	now   func() time.Time
}

func NewReminderService(lists domain.ListRepository, users domain.UserRepository) *ReminderService {
	return &ReminderService{lists: lists, users: users, now: func() time.Time { return time.Now().UTC() }}
}

type InactiveList struct {
	domain.ListView
	DaysSinceActivity int `json:"daysSinceActivity"`
}

type InactiveReport struct {
	Enabled bool           `json:"enabled"`
	Days    int            `json:"days"`
	Lists   []InactiveList `json:"lists"`
}

const maxInactiveDays = 365

func (s *ReminderService) InactiveLists(ctx context.Context, userID string, days int) (*InactiveReport, error) {
	if days == 0 {
		days = domain.DefaultInactiveDays
	}
	if days < 1 || days > maxInactiveDays {
		return nil, domain.Validation("days", "days must be between 1 and 365")
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("load user", err)
	}
	if u == nil {
		return nil, domain.NotFound("user")
	}
	rep := &InactiveReport{Enabled: u.ActivityRemindersEnabled, Days: days, Lists: []InactiveList{}}
	if !u.ActivityRemindersEnabled {
		return rep, nil
	}

	now := s.now()
	lists, err := s.lists.ListInactive(ctx, userID, now.Add(-time.Duration(days)*24*time.Hour))
	if err != nil {
		return nil, domain.Internal("list inactive lists", err)
	}
	for _, l := range lists {
		rep.Lists = append(rep.Lists, InactiveList{
			ListView:          l.View(),
			DaysSinceActivity: int(now.Sub(l.LastActivityAt).Hours() / 24),
		})
	}
	return rep, nil
}
