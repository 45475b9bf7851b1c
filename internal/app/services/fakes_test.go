package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/domain/attendance"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/cache"
)

// memDB is an in-memory stand-in for the Postgres repositories
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
	subjects map[int64]*models.Subject
	records  map[int64]map[time.Time]bool
	holidays map[int64]map[time.Time]string
	schedule []models.ScheduleEntry
}

func newMemDB() *memDB {
	return &memDB{
		students: map[int64]*models.Student{},
		subjects: map[int64]*models.Subject{},
		records:  map[int64]map[time.Time]bool{},
		holidays: map[int64]map[time.Time]string{},
	}
}

func (db *memDB) stores() Stores {
	return Stores{
		Students:   memStudents{db},
		Subjects:   memSubjects{db},
		Attendance: memAttendance{db},
		Holidays:   memHolidays{db},
		Schedule:   memSchedule{db},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

type memStudents struct{ db *memDB }

func (m memStudents) Create(_ context.Context, s *models.Student) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.students {
		if existing.Username == s.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
	}
	cp := *s
	cp.ID = m.db.id()
	m.db.students[cp.ID] = &cp
	return cp.ID, nil
}

func (m memStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	s, ok := m.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (m memStudents) List(_ context.Context) ([]*models.Student, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*models.Student{}
	for _, s := range m.db.students {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memStudents) UpdateSemester(_ context.Context, s *models.Student) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.students[s.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *s
	m.db.students[s.ID] = &cp
	return nil
}

type memSubjects struct{ db *memDB }

func (m memSubjects) Create(_ context.Context, s *models.Subject) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.students[s.StudentID]; !ok {
		return 0, apperrors.ErrStudentNotFound
	}
	for _, existing := range m.db.subjects {
		if existing.StudentID == s.StudentID && existing.Name == s.Name {
			return 0, apperrors.ErrSubjectAlreadyExists
		}
	}
	cp := *s
	cp.ID = m.db.id()
	m.db.subjects[cp.ID] = &cp
	return cp.ID, nil
}

func (m memSubjects) GetByID(_ context.Context, studentID, subjectID int64) (*models.Subject, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	s, ok := m.db.subjects[subjectID]
	if !ok || s.StudentID != studentID {
		return nil, apperrors.ErrSubjectNotFound
	}
	cp := *s
	return &cp, nil
}

func (m memSubjects) ListByStudent(_ context.Context, studentID int64) ([]*models.Subject, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []*models.Subject{}
	for _, s := range m.db.subjects {
		if s.StudentID == studentID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memSubjects) Update(_ context.Context, s *models.Subject) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	existing, ok := m.db.subjects[s.ID]
	if !ok || existing.StudentID != s.StudentID {
		return apperrors.ErrSubjectNotFound
	}
	cp := *s
	m.db.subjects[s.ID] = &cp
	return nil
}

func (m memSubjects) Delete(_ context.Context, studentID, subjectID int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	existing, ok := m.db.subjects[subjectID]
	if !ok || existing.StudentID != studentID {
		return apperrors.ErrSubjectNotFound
	}
	delete(m.db.subjects, subjectID)
	delete(m.db.records, subjectID)
	return nil
}

type memAttendance struct{ db *memDB }

func (m memAttendance) Upsert(_ context.Context, subjectID int64, date time.Time, present bool) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.records[subjectID] == nil {
		m.db.records[subjectID] = map[time.Time]bool{}
	}
	m.db.records[subjectID][attendance.Day(date)] = present
	return nil
}

func (m memAttendance) Delete(_ context.Context, subjectID int64, date time.Time) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	d := attendance.Day(date)
	if _, ok := m.db.records[subjectID][d]; !ok {
		return apperrors.ErrAttendanceNotFound
	}
	delete(m.db.records[subjectID], d)
	return nil
}

func (m memAttendance) DeleteForStudentBetween(_ context.Context, studentID int64, from, to time.Time) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var n int64
	for id, s := range m.db.subjects {
		if s.StudentID != studentID {
			continue
		}
		for d := range m.db.records[id] {
			if !d.Before(from) && !d.After(to) {
				delete(m.db.records[id], d)
				n++
			}
		}
	}
	return n, nil
}

func (m memAttendance) ReplaceForSubject(_ context.Context, subjectID int64, records []attendance.Record) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.records[subjectID] = map[time.Time]bool{}
	for _, r := range records {
		m.db.records[subjectID][attendance.Day(r.Date)] = r.Present
	}
	return nil
}

func (m memAttendance) rows(subjectID int64) []models.AttendanceRecord {
	out := []models.AttendanceRecord{}
	for d, p := range m.db.records[subjectID] {
		out = append(out, models.AttendanceRecord{SubjectID: subjectID, RecordDate: d, IsPresent: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.Before(out[j].RecordDate) })
	return out
}

func (m memAttendance) ListBySubject(_ context.Context, subjectID int64, offset, limit uint64) ([]models.AttendanceRecord, int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	all := m.rows(subjectID)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []models.AttendanceRecord{}, total, nil
	}
	end := min(offset+limit, uint64(len(all)))
	return all[offset:end], total, nil
}

func (m memAttendance) TallyBySubject(_ context.Context, subjectID int64) (attendance.Tally, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var t attendance.Tally
	for _, p := range m.db.records[subjectID] {
		t.Conducted++
		if p {
			t.Attended++
		}
	}
	return t, nil
}

func (m memAttendance) ListByStudent(_ context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []models.AttendanceRecord{}
	for id, s := range m.db.subjects {
		if s.StudentID == studentID {
			out = append(out, m.rows(id)...)
		}
	}
	return out, nil
}

type memHolidays struct{ db *memDB }

func (m memHolidays) Upsert(ctx context.Context, studentID int64, h attendance.Holiday) error {
	return m.UpsertMany(ctx, studentID, []attendance.Holiday{h})
}

func (m memHolidays) UpsertMany(_ context.Context, studentID int64, hs []attendance.Holiday) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if m.db.holidays[studentID] == nil {
		m.db.holidays[studentID] = map[time.Time]string{}
	}
	for _, h := range hs {
		m.db.holidays[studentID][attendance.Day(h.Date)] = h.Description
	}
	return nil
}

func (m memHolidays) Delete(_ context.Context, studentID int64, date time.Time) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	d := attendance.Day(date)
	if _, ok := m.db.holidays[studentID][d]; !ok {
		return apperrors.ErrHolidayNotFound
	}
	delete(m.db.holidays[studentID], d)
	return nil
}

func (m memHolidays) DeleteByDescription(_ context.Context, studentID int64, description string) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var n int64
	for d, desc := range m.db.holidays[studentID] {
		if desc == description {
			delete(m.db.holidays[studentID], d)
			n++
		}
	}
	return n, nil
}

func (m memHolidays) Move(_ context.Context, studentID int64, oldDate time.Time, h attendance.Holiday) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	from, to := attendance.Day(oldDate), attendance.Day(h.Date)
	if _, ok := m.db.holidays[studentID][from]; !ok {
		return apperrors.ErrHolidayNotFound
	}
	if _, taken := m.db.holidays[studentID][to]; taken && !to.Equal(from) {
		return apperrors.ErrHolidayExists
	}
	delete(m.db.holidays[studentID], from)
	m.db.holidays[studentID][to] = h.Description
	return nil
}

func (m memHolidays) ListByStudent(_ context.Context, studentID int64) ([]models.Holiday, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []models.Holiday{}
	for d, desc := range m.db.holidays[studentID] {
		out = append(out, models.Holiday{StudentID: studentID, HolidayDate: d, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HolidayDate.Before(out[j].HolidayDate) })
	return out, nil
}

type memSchedule struct{ db *memDB }

func (m memSchedule) ReplaceDays(_ context.Context, subjectID int64, days []time.Weekday) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	kept := m.db.schedule[:0]
	for _, e := range m.db.schedule {
		if e.SubjectID != subjectID {
			kept = append(kept, e)
		}
	}
	m.db.schedule = kept
	for _, d := range days {
		m.db.schedule = append(m.db.schedule, models.ScheduleEntry{SubjectID: subjectID, DayOfWeek: d})
	}
	return nil
}

func (m memSchedule) ListByStudent(_ context.Context, studentID int64) ([]models.ScheduleEntry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []models.ScheduleEntry{}
	for _, e := range m.db.schedule {
		if s, ok := m.db.subjects[e.SubjectID]; ok && s.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

// memCache records dashboard traffic so tests can assert hits and
// invalidations. Generation counters are stored alongside but not counted.
type memCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	gets    int
	hits    int
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]interface{}{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	dashboard := strings.HasPrefix(key, cache.PrefixDashboard)
	if dashboard {
		c.gets++
	}
	v, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *Dashboard:
		*d = v.(Dashboard)
	case *int64:
		*d = v.(int64)
	default:
		return cache.ErrCacheSerialization
	}
	if dashboard {
		c.hits++
	}
	return nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *(value.(*Dashboard))
	return nil
}

func (c *memCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, prefix)
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := c.entries[key].(int64)
	n++
	c.entries[key] = n
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }

func (c *memCache) Close() error { return nil }

// fixedSource serves a canned holiday list
type fixedSource struct {
	holidays []attendance.Holiday
}

func (fixedSource) Region() string { return "test" }

func (f fixedSource) Between(from, to time.Time) ([]attendance.Holiday, error) {
	if to.Before(from) {
		return nil, attendance.ErrInvalidRange
	}
	var out []attendance.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}
