package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

const (
	ActivityRegistration = "user_registration"
	ActivityEnrollment   = "course_enrollment"
	ActivityPayment      = "payment"
	ActivityCompletion   = "course_completion"

	maxRecordedActivity = 500
)

// ActivityService serves the admin feed: events recorded at runtime (newest
// first) followed by the demo history.
type ActivityService struct {
	mu       sync.RWMutex
	recorded []model.Activity
	seq      int
	now      func() time.Time
}

func NewActivityService() *ActivityService {
	return &ActivityService{now: time.Now}
}

func (s *ActivityService) Record(activityType, user, description string, amount *int) model.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	a := model.Activity{
		ID:          "evt-" + strconv.Itoa(s.seq),
		Type:        activityType,
		User:        user,
		Description: description,
		Timestamp:   s.now().UTC(),
		Amount:      amount,
	}
	s.recorded = append([]model.Activity{a}, s.recorded...)
	if len(s.recorded) > maxRecordedActivity {
		s.recorded = s.recorded[:maxRecordedActivity]
	}
	return a
}

// List returns at most limit activities, optionally restricted to one type.
func (s *ActivityService) List(activityType string, limit int) []model.Activity {
	if limit <= 0 {
		return []model.Activity{}
	}

	s.mu.RLock()
	feed := make([]model.Activity, 0, len(s.recorded)+4)
	feed = append(feed, s.recorded...)
	s.mu.RUnlock()
	feed = append(feed, s.history()...)

	out := make([]model.Activity, 0, limit)
	for _, a := range feed {
		if len(out) == limit {
			break
		}
		if activityType != "" && a.Type != activityType {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *ActivityService) history() []model.Activity {
	now := s.now().UTC()
	amount := 50
	return []model.Activity{
		{
			ID:          "1",
			Type:        ActivityRegistration,
			User:        demoUserName,
			Description: "Se registró un nuevo usuario",
			Timestamp:   now,
		},
		{
			ID:          "2",
			Type:        ActivityEnrollment,
			User:        demoUserName,
			Description: `Se inscribió en "Fundamentos de IA"`,
			Timestamp:   now.Add(-time.Hour),
		},
		{
			ID:          "3",
			Type:        ActivityPayment,
			User:        demoUserName,
			Description: "Compró paquete de créditos",
			Timestamp:   now.Add(-2 * time.Hour),
			Amount:      &amount,
		},
		{
			ID:          "4",
			Type:        ActivityCompletion,
			User:        demoUserName,
			Description: `Completó "Productividad con IA"`,
			Timestamp:   now.Add(-24 * time.Hour),
		},
	}
}
