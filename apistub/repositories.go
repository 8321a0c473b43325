package apistub

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all stub repositories.
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() repository.Repository[*User]
	Courses() repository.Repository[*Course]
	Schedules() repository.Repository[*Schedule]
	Enrollments() repository.Repository[*Enrollment]
	NotificationSettings() repository.Repository[*NotificationSettings]
}

func NewUsersRepository(db *bun.DB) repository.Repository[*User] {
	return repository.NewRepository(db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(record *User) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *User, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})
}

func NewCoursesRepository(db *bun.DB) repository.Repository[*Course] {
	return repository.NewRepository(db, repository.ModelHandlers[*Course]{
		NewRecord: func() *Course { return &Course{} },
		GetID: func(record *Course) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Course, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "code"
		},
	})
}

func NewSchedulesRepository(db *bun.DB) repository.Repository[*Schedule] {
	return repository.NewRepository(db, repository.ModelHandlers[*Schedule]{
		NewRecord: func() *Schedule { return &Schedule{} },
		GetID: func(record *Schedule) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Schedule, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	})
}

func NewEnrollmentsRepository(db *bun.DB) repository.Repository[*Enrollment] {
	return repository.NewRepository(db, repository.ModelHandlers[*Enrollment]{
		NewRecord: func() *Enrollment { return &Enrollment{} },
		GetID: func(record *Enrollment) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Enrollment, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	})
}

func NewNotificationSettingsRepository(db *bun.DB) repository.Repository[*NotificationSettings] {
	return repository.NewRepository(db, repository.ModelHandlers[*NotificationSettings]{
		NewRecord: func() *NotificationSettings { return &NotificationSettings{} },
		GetID: func(record *NotificationSettings) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *NotificationSettings, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	})
}

type mngr struct {
	db          *bun.DB
	users       repository.Repository[*User]
	courses     repository.Repository[*Course]
	schedules   repository.Repository[*Schedule]
	enrollments repository.Repository[*Enrollment]
	settings    repository.Repository[*NotificationSettings]
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:          db,
		users:       NewUsersRepository(db),
		courses:     NewCoursesRepository(db),
		schedules:   NewSchedulesRepository(db),
		enrollments: NewEnrollmentsRepository(db),
		settings:    NewNotificationSettingsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}
	if m.courses == nil {
		return errors.New("repository courses should be initialized")
	}
	if m.schedules == nil {
		return errors.New("repository schedules should be initialized")
	}
	if m.enrollments == nil {
		return errors.New("repository enrollments should be initialized")
	}
	if m.settings == nil {
		return errors.New("repository notification settings should be initialized")
	}
	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() repository.Repository[*User] {
	return m.users
}

func (m mngr) Courses() repository.Repository[*Course] {
	return m.courses
}

func (m mngr) Schedules() repository.Repository[*Schedule] {
	return m.schedules
}

func (m mngr) Enrollments() repository.Repository[*Enrollment] {
	return m.enrollments
}

func (m mngr) NotificationSettings() repository.Repository[*NotificationSettings] {
	return m.settings
}
