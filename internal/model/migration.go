package model

import "time"

// Migration records a named schema step that ran on top of AutoMigrate
type Migration struct {
	ID        int       `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// All returns every model that AutoMigrate has to know about, parents first
func All() []any {
	return []any{
		&User{},
		&JobSeekerProfile{},
		&EmployerProfile{},
		&Job{},
		&Application{},
		&ResendRequest{},
		&Migration{},
	}
}
