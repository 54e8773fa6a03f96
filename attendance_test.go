package main

import (
	"testing"
	"time"

	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceClockIn(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	_, member := createTestOrg(db, "ACME1")
	token := generateTestJWT(member)

	t.Run("Clock-in before the cutoff is Present", func(t *testing.T) {
		t.Setenv("LATE_CUTOFF", "23:59")

		resp, err := app.Test(jsonRequest("POST", "/api/Attendance/clockin", token, nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var record models.Attendance
		today := time.Now().Format(models.AttendanceDateLayout)
		assert.NoError(t, db.Where("member_id = ? AND date = ?", member.ID, today).First(&record).Error)
		assert.Equal(t, models.AttendanceStatusPresent, record.Status)
		assert.NotNil(t, record.TimeIn)
	})

	t.Run("Second clock-in on the same day fails", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/clockin", token, nil))
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "Already clocked in today.", decodeBody(resp)["error"])
	})

	t.Run("Clock-in after the cutoff is Late", func(t *testing.T) {
		t.Setenv("LATE_CUTOFF", "00:01")
		_, other := createTestOrg(db, "ACME2")

		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/clockin", generateTestJWT(other), nil))
		assert.Equal(t, 200, resp.StatusCode)

		var record models.Attendance
		today := time.Now().Format(models.AttendanceDateLayout)
		db.Where("member_id = ? AND date = ?", other.ID, today).First(&record)
		assert.Equal(t, models.AttendanceStatusLate, record.Status)
	})
}

func TestAttendanceClockOut(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	_, member := createTestOrg(db, "ACME1")
	token := generateTestJWT(member)

	t.Run("Clock-out without clock-in fails", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/clockout", token, nil))
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Clock-out stamps the open record", func(t *testing.T) {
		t.Setenv("LATE_CUTOFF", "23:59")
		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/clockin", token, nil))
		assert.Equal(t, 200, resp.StatusCode)

		resp, _ = app.Test(jsonRequest("POST", "/api/Attendance/clockout", token, nil))
		assert.Equal(t, 200, resp.StatusCode)

		var record models.Attendance
		today := time.Now().Format(models.AttendanceDateLayout)
		db.Where("member_id = ? AND date = ?", member.ID, today).First(&record)
		assert.NotNil(t, record.TimeOut)
	})
}

func TestAttendanceHistory(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	createTestOrg(db, "ACME2")

	db.Create(&models.Attendance{
		MemberID:    member.ID,
		CompanyCode: "ACME1",
		Date:        "2026-08-26",
		Status:      models.AttendanceStatusAbsent,
	})

	resp, _ := app.Test(jsonRequest("GET", "/api/Attendance/company/ACME1", generateTestJWT(founder), nil))
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(resp)
	data := body["data"].([]interface{})
	assert.Len(t, data, 1)

	row := data[0].(map[string]interface{})
	assert.Equal(t, "Milo Member", row["memberName"])
	assert.Equal(t, models.AttendanceStatusAbsent, row["status"])
}

func TestAttendanceAutofill(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	token := generateTestJWT(founder)

	t.Run("Backfills absent workdays", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/api/Attendance/autofill/2", token, nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		filled := decodeBody(resp)["filled"].(float64)
		assert.Greater(t, filled, float64(0))

		var rows []models.Attendance
		db.Where("member_id = ?", member.ID).Find(&rows)
		assert.Equal(t, int(filled), len(rows))

		today := time.Now().Format(models.AttendanceDateLayout)
		for _, row := range rows {
			assert.Equal(t, models.AttendanceStatusAbsent, row.Status)
			assert.NotEqual(t, today, row.Date)

			day, _ := time.Parse(models.AttendanceDateLayout, row.Date)
			assert.NotEqual(t, time.Saturday, day.Weekday())
			assert.NotEqual(t, time.Sunday, day.Weekday())
		}
	})

	t.Run("Second run fills nothing", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/autofill/2", token, nil))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, float64(0), decodeBody(resp)["filled"])
	})

	t.Run("Unknown member fails", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/autofill/999", token, nil))
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Member hired today gets nothing", func(t *testing.T) {
		hash, _ := utils.HashPassword("password123")
		fresh := models.User{
			FirstName:    "Tess",
			LastName:     "Today",
			Email:        "tess@acme1.test",
			PasswordHash: hash,
			Role:         models.RoleMember,
			Status:       models.UserStatusActive,
			HiredDate:    time.Now(),
			CompanyCode:  "ACME1",
		}
		db.Create(&fresh)

		resp, _ := app.Test(jsonRequest("POST", "/api/Attendance/autofill/3", token, nil))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, float64(0), decodeBody(resp)["filled"])

		var count int64
		db.Model(&models.Attendance{}).Where("member_id = ?", fresh.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
