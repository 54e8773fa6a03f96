package services

import (
	"errors"
	"os"
	"time"

	"orghub-backend/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// autofillWindowDays caps how far back the absent autofill reaches.
const autofillWindowDays = 30

// AttendanceService owns daily attendance records: idempotent clock-in with
// late derivation and absent backfill for missed workdays.
type AttendanceService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(db *gorm.DB, activity *ActivityService) *AttendanceService {
	return &AttendanceService{DB: db, Activity: activity}
}

// LateCutoff returns the configured clock-in cutoff (HH:MM, default 09:15).
// Clocking in after it marks the day Late instead of Present.
func LateCutoff() (hour, minute int) {
	cutoff := os.Getenv("LATE_CUTOFF")
	if cutoff == "" {
		cutoff = "09:15"
	}
	t, err := time.Parse("15:04", cutoff)
	if err != nil {
		return 9, 15
	}
	return t.Hour(), t.Minute()
}

// ClockIn records today's clock-in for a member. The daily row is created if
// it does not exist yet; a second clock-in on the same day fails.
func (s *AttendanceService) ClockIn(companyCode string, memberID uint) (*models.Attendance, error) {
	now := time.Now()
	today := now.Format(models.AttendanceDateLayout)

	var record models.Attendance
	err := s.DB.Where("member_id = ? AND date = ?", memberID, today).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.Attendance{
			MemberID:    memberID,
			CompanyCode: companyCode,
			Date:        today,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if record.TimeIn != nil {
		return nil, Validationf("Already clocked in today.")
	}

	hour, minute := LateCutoff()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	record.TimeIn = &now
	if now.After(cutoff) {
		record.Status = models.AttendanceStatusLate
	} else {
		record.Status = models.AttendanceStatusPresent
	}

	if err := s.DB.Save(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// ClockOut stamps today's time-out. Requires a prior clock-in.
func (s *AttendanceService) ClockOut(companyCode string, memberID uint) (*models.Attendance, error) {
	now := time.Now()
	today := now.Format(models.AttendanceDateLayout)

	var record models.Attendance
	err := s.DB.Where("member_id = ? AND date = ?", memberID, today).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Validationf("No clock-in recorded today.")
	} else if err != nil {
		return nil, err
	}
	if record.TimeIn == nil {
		return nil, Validationf("No clock-in recorded today.")
	}

	record.TimeOut = &now
	if err := s.DB.Save(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// AttendanceRecord is the listing projection with the member's name joined.
type AttendanceRecord struct {
	models.Attendance
	MemberName string `json:"memberName"`
}

// ListByCompany returns the organization's attendance history, newest first.
func (s *AttendanceService) ListByCompany(companyCode string) ([]AttendanceRecord, error) {
	records := make([]AttendanceRecord, 0)
	err := s.DB.Model(&models.Attendance{}).
		Select("attendances.*, users.first_name || ' ' || users.last_name AS member_name").
		Joins("LEFT JOIN users ON users.id = attendances.member_id").
		Where("attendances.company_code = ?", companyCode).
		Order("attendances.date DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AutofillAbsences creates Absent rows for each past workday since the
// member was hired (capped to the autofill window) that has no record.
// Weekends are skipped. Today is left alone so the member can still clock
// in.
func (s *AttendanceService) AutofillAbsences(companyCode string, memberID uint) (int, error) {
	var member models.User
	err := s.DB.Where("id = ? AND company_code = ?", memberID, companyCode).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	// Day boundaries follow the local calendar, the same way ClockIn keys
	// its daily rows. Today is excluded so the member can still clock in.
	now := time.Now()
	today := now.Format(models.AttendanceDateLayout)
	start := now.AddDate(0, 0, -autofillWindowDays)
	if hired := member.HiredDate.In(now.Location()); hired.After(start) {
		start = hired
	}

	var existing []models.Attendance
	if err := s.DB.Where("member_id = ? AND date >= ?", memberID, start.Format(models.AttendanceDateLayout)).Find(&existing).Error; err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seen[rec.Date] = true
	}

	filled := 0
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	for ; day.Format(models.AttendanceDateLayout) < today; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		key := day.Format(models.AttendanceDateLayout)
		if seen[key] {
			continue
		}
		record := models.Attendance{
			MemberID:    memberID,
			CompanyCode: companyCode,
			Date:        key,
			Status:      models.AttendanceStatusAbsent,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			return filled, err
		}
		filled++
	}

	return filled, nil
}

// RegisterAutofillJob schedules the nightly absent backfill for every
// active member.
func (s *AttendanceService) RegisterAutofillJob(c *cron.Cron) error {
	_, err := c.AddFunc("0 1 * * *", func() {
		var members []models.User
		if err := s.DB.Where("status = ?", models.UserStatusActive).Find(&members).Error; err != nil {
			zap.L().Error("attendance autofill member scan failed", zap.Error(err))
			return
		}
		for _, member := range members {
			if _, err := s.AutofillAbsences(member.CompanyCode, member.ID); err != nil {
				zap.L().Warn("attendance autofill failed",
					zap.Uint("member_id", member.ID),
					zap.Error(err))
			}
		}
	})
	return err
}
