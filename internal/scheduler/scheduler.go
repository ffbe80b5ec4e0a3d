package scheduler

import (
	"context"
	"math/rand"
	"time"

	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/habitflow-app/habitflow-api/internal/user"
	"github.com/robfig/cron/v3"
)

var motivationMessages = []string{
	"Every small step counts towards your bigger goals! 💪",
	"You're building the best version of yourself, one habit at a time! 🌟",
	"Consistency beats perfection. Keep going! 🔥",
	"Your future self will thank you for today's efforts! 🙏",
	"Small changes today, big results tomorrow! 🎯",
	"You have the power to change your life through habits! ⚡",
	"Every expert was once a beginner. Keep pushing! 🚀",
	"Your habits shape your destiny. Choose wisely! ✨",
}

// Scheduler runs the recurring reminder jobs in-process. All schedules are
// evaluated in UTC, matching how habit dates are tracked.
type Scheduler struct {
	cron       *cron.Cron
	userRepo   user.UserRepository
	habitRepo  habit.HabitRepository
	dispatcher notification.Dispatcher
	now        func() time.Time
}

func New(userRepo user.UserRepository, habitRepo habit.HabitRepository, dispatcher notification.Dispatcher) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		userRepo:   userRepo,
		habitRepo:  habitRepo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func(ctx context.Context)
	}{
		{"0 8 * * *", "morning_reminder", s.runMorningReminder},
		{"0 20 * * *", "evening_reminder", s.runEveningReminder},
		{"0 9 * * 0", "weekly_progress", s.runWeeklyProgress},
		{"0 * * * *", "habit_time_reminders", s.runHabitTimeReminders},
		{"0 22 * * *", "streak_at_risk", s.runStreakAtRisk},
		{"0 10 * * *", "motivation", s.runMotivation},
		{"0 14 * * *", "motivation", s.runMotivation},
		{"0 16 * * *", "motivation", s.runMotivation},
		{"0 18 * * *", "motivation", s.runMotivation},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			ctx := context.Background()
			log := config.WithContext(ctx).WithField("job", job.name)
			log.Info("Running scheduled job")
			job.run(ctx)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	config.Logger().Info("Scheduled notifications initialized")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// forEachNotifiableUser loads opted-in users and runs fn per user. Job-level
// failures are logged and swallowed; a scheduler tick must never crash the
// process.
func (s *Scheduler) forEachNotifiableUser(ctx context.Context, fn func(u *user.User)) {
	users, err := s.userRepo.ListNotifiable()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load users for scheduled job")
		return
	}
	for i := range users {
		fn(&users[i])
	}
}

func (s *Scheduler) dueToday(u *user.User) []habit.Habit {
	habits, err := s.habitRepo.FindDueOn(u.ID, habit.DayIndex(s.now()))
	if err != nil {
		config.Logger().WithError(err).WithField("user_id", u.ID).Error("Failed to load due habits")
		return nil
	}
	return habits
}

func (s *Scheduler) send(ctx context.Context, u *user.User, n notification.Notification) {
	if err := s.dispatcher.SendToUser(ctx, u.ID, n); err != nil {
		config.WithContext(ctx).WithError(err).
			WithField("user_id", u.ID).
			Warnf("Failed to send %q notification", n.Type)
	}
}

func (s *Scheduler) runMorningReminder(ctx context.Context) {
	s.forEachNotifiableUser(ctx, func(u *user.User) {
		habits := s.dueToday(u)
		if len(habits) == 0 {
			return
		}
		names := make([]string, 0, len(habits))
		for _, h := range habits {
			names = append(names, h.Name)
		}
		s.send(ctx, u, notification.DailyReminder(names))
	})
}

func (s *Scheduler) runEveningReminder(ctx context.Context) {
	now := s.now()
	s.forEachNotifiableUser(ctx, func(u *user.User) {
		var incomplete []string
		for _, h := range s.dueToday(u) {
			if !habit.CompletedOn(h.Completions, now) {
				incomplete = append(incomplete, h.Name)
			}
		}
		if len(incomplete) == 0 {
			return
		}
		s.send(ctx, u, notification.IncompleteReminder(incomplete))
	})
}

// runHabitTimeReminders pings habits due today whose target hour matches the
// current UTC hour.
func (s *Scheduler) runHabitTimeReminders(ctx context.Context) {
	now := s.now().UTC()
	s.forEachNotifiableUser(ctx, func(u *user.User) {
		for _, h := range s.dueToday(u) {
			target, err := time.Parse(time.RFC3339, h.TargetTime)
			if err != nil {
				continue
			}
			if target.UTC().Hour() != now.Hour() {
				continue
			}
			s.send(ctx, u, notification.HabitTimeReminder(h.ID.String(), h.Name, h.TargetTime))
		}
	})
}

// runStreakAtRisk warns about habits due today that carry a streak but have
// no completion yet.
func (s *Scheduler) runStreakAtRisk(ctx context.Context) {
	now := s.now()
	s.forEachNotifiableUser(ctx, func(u *user.User) {
		for _, h := range s.dueToday(u) {
			if h.Streak == 0 || habit.CompletedOn(h.Completions, now) {
				continue
			}
			s.send(ctx, u, notification.StreakAtRisk(h.ID.String(), h.Name, h.Streak))
		}
	})
}

// runWeeklyProgress reports completions over the previous 7 UTC days against
// the number of scheduled habit-days.
func (s *Scheduler) runWeeklyProgress(ctx context.Context) {
	now := s.now().UTC()
	s.forEachNotifiableUser(ctx, func(u *user.User) {
		habits, err := s.habitRepo.ListByUser(u.ID)
		if err != nil {
			config.WithContext(ctx).WithError(err).WithField("user_id", u.ID).Error("Failed to load habits for weekly progress")
			return
		}
		if len(habits) == 0 {
			return
		}

		scheduled, completed := 0, 0
		for offset := 1; offset <= 7; offset++ {
			day := now.AddDate(0, 0, -offset)
			for _, h := range habits {
				if !habit.IsDue(h.Repeats, day) {
					continue
				}
				scheduled++
				if habit.CompletedOn(h.Completions, day) {
					completed++
				}
			}
		}
		if scheduled == 0 {
			return
		}

		rate := completed * 100 / scheduled
		s.send(ctx, u, notification.WeeklyProgress(completed, scheduled, rate))
	})
}

func (s *Scheduler) runMotivation(ctx context.Context) {
	s.forEachNotifiableUser(ctx, func(u *user.User) {
		message := motivationMessages[rand.Intn(len(motivationMessages))]
		s.send(ctx, u, notification.Motivation(message))
	})
}
