package services

import (
	"time"

	"github.com/yigit/attendance/internal/pkg/cache"
	"github.com/yigit/attendance/internal/pkg/helpers"
)

// Services groups every service the controllers depend on
type Services struct {
	StudentService     StudentService
	SubjectService     SubjectService
	AttendanceService  AttendanceService
	HolidayService     HolidayService
	EligibilityService EligibilityService
	InsightsService    InsightsService
}

// Deps are the shared collaborators of the services
type Deps struct {
	Stores       Stores
	Clock        *helpers.Clock
	Cache        cache.Cache
	DashboardTTL time.Duration
	Holidays     HolidaySource
}

// NewServices wires all services around one snapshot loader and cache
func NewServices(d Deps) *Services {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	loader := NewSnapshotLoader(d.Stores)
	invalidator := NewInvalidator(d.Cache)

	return &Services{
		StudentService:     NewStudentService(d.Stores.Students, invalidator),
		SubjectService:     NewSubjectService(d.Stores, invalidator),
		AttendanceService:  NewAttendanceService(d.Stores, loader, d.Clock, invalidator),
		HolidayService:     NewHolidayService(d.Stores, d.Holidays, invalidator),
		EligibilityService: NewEligibilityService(loader, d.Clock, d.Cache, d.DashboardTTL),
		InsightsService:    NewInsightsService(loader),
	}
}
