package main

import (
	"testing"

	"orghub-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestMemberManagement(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	founderToken := generateTestJWT(founder)

	t.Run("Create member", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/api/Users/", founderToken, map[string]interface{}{
			"first_name": "Nadia",
			"last_name":  "Newhire",
			"email":      "nadia@acme1.test",
			"password":   "secret123",
		}))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var created models.User
		assert.NoError(t, db.Where("email = ?", "nadia@acme1.test").First(&created).Error)
		assert.Equal(t, models.RoleMember, created.Role)
		assert.Equal(t, models.UserStatusActive, created.Status)
		assert.Equal(t, "ACME1", created.CompanyCode)
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Users/", founderToken, map[string]interface{}{
			"first_name": "Nadia",
			"last_name":  "Again",
			"email":      "nadia@acme1.test",
			"password":   "secret123",
		}))
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Members may not create accounts", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Users/", generateTestJWT(member), map[string]interface{}{
			"first_name": "Rogue",
			"last_name":  "Hire",
			"email":      "rogue@acme1.test",
			"password":   "secret123",
		}))
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("List members", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/Users/company/ACME1", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(resp)
		assert.Equal(t, float64(3), body["count"])
	})

	t.Run("Member profile aggregations", func(t *testing.T) {
		db.Create(&models.Attendance{MemberID: member.ID, CompanyCode: "ACME1", Date: "2026-08-25", Status: models.AttendanceStatusPresent})
		db.Create(&models.Attendance{MemberID: member.ID, CompanyCode: "ACME1", Date: "2026-08-26", Status: models.AttendanceStatusAbsent})
		db.Create(&models.Task{MemberID: member.ID, CompanyCode: "ACME1", Title: "Audit", Status: models.TaskStatusCompleted})

		resp, _ := app.Test(jsonRequest("GET", "/api/Users/2", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(resp)
		assert.Equal(t, float64(1), body["attendanceCountPresent"])
		assert.Equal(t, float64(1), body["attendanceCountAbsence"])
		assert.Equal(t, float64(50), body["attendanceRate"])
		assert.Equal(t, float64(1), body["taskCompleted"])
		assert.Len(t, body["attendancehistory"].([]interface{}), 2)
	})

	t.Run("Delete member", func(t *testing.T) {
		var target models.User
		db.Where("email = ?", "nadia@acme1.test").First(&target)

		resp, _ := app.Test(jsonRequest("DELETE", "/api/Users/members/3", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		resp, _ = app.Test(jsonRequest("DELETE", "/api/Users/members/3", founderToken, nil))
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestMemberUpdateValidation(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	founderToken := generateTestJWT(founder)

	t.Run("Blank email rejected", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("PUT", "/api/Users/2", founderToken, map[string]interface{}{
			"first_name": "Milo",
			"last_name":  "Member",
			"email":      "",
			"role":       models.RoleMember,
			"status":     models.UserStatusActive,
		}))
		assert.Equal(t, 400, resp.StatusCode)

		var unchanged models.User
		db.First(&unchanged, member.ID)
		assert.Equal(t, member.Email, unchanged.Email)
	})

	t.Run("Malformed email rejected", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("PUT", "/api/Users/2", founderToken, map[string]interface{}{
			"first_name": "Milo",
			"last_name":  "Member",
			"email":      "not-an-email",
			"role":       models.RoleMember,
			"status":     models.UserStatusActive,
		}))
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Valid update applies", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("PUT", "/api/Users/2", founderToken, map[string]interface{}{
			"first_name": "Milo",
			"last_name":  "Promoted",
			"email":      member.Email,
			"role":       models.RoleAdmin,
			"status":     models.UserStatusActive,
		}))
		assert.Equal(t, 200, resp.StatusCode)

		var updated models.User
		db.First(&updated, member.ID)
		assert.Equal(t, "Promoted", updated.LastName)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})
}

func TestCompanyCodeProbe(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	createTestOrg(db, "ACME1")

	resp, _ := app.Test(jsonRequest("GET", "/api/Users/check-community/ACME1", "", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, decodeBody(resp)["exists"])

	resp, _ = app.Test(jsonRequest("GET", "/api/Users/check-community/NOPE", "", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, false, decodeBody(resp)["exists"])
}

func TestFeedbackFlow(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	founderToken := generateTestJWT(founder)
	memberToken := generateTestJWT(member)

	t.Run("Member submits feedback", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Feedback/", memberToken, map[string]interface{}{
			"subject":  "Broken chair in meeting room",
			"category": "Facilities",
			"message":  "The wheel came off last week.",
		}))
		assert.Equal(t, 201, resp.StatusCode)

		var feedback models.Feedback
		db.First(&feedback, 1)
		assert.Equal(t, models.FeedbackStatusOpen, feedback.Status)
		assert.Equal(t, member.ID, feedback.FeedbackBy)
	})

	t.Run("Empty subject rejected", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Feedback/", memberToken, map[string]interface{}{
			"subject": " ",
			"message": "hello",
		}))
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Admin triages", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("PUT", "/api/Feedback/1/status", founderToken, map[string]interface{}{
			"status": models.FeedbackStatusResolved,
		}))
		assert.Equal(t, 200, resp.StatusCode)

		var feedback models.Feedback
		db.First(&feedback, 1)
		assert.Equal(t, models.FeedbackStatusResolved, feedback.Status)
	})

	t.Run("Members may not list company feedback", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/Feedback/company/ACME1", memberToken, nil))
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Company listing joins the author", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/Feedback/company/ACME1", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		rows := decodeBody(resp)["feedback"].([]interface{})
		assert.Len(t, rows, 1)
		assert.Equal(t, "Milo Member", rows[0].(map[string]interface{})["feedbackByName"])
	})
}

func TestAnnouncements(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	founderToken := generateTestJWT(founder)

	t.Run("Create stamps the author", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Announcements/", founderToken, map[string]interface{}{
			"type":    "Events",
			"title":   "Summer Party",
			"content": "Friday at six, rooftop.",
		}))
		assert.Equal(t, 201, resp.StatusCode)

		var announcement models.Announcement
		db.First(&announcement, 1)
		assert.Equal(t, "Fiona Founder", announcement.Author)
		assert.Equal(t, models.RoleFounder, announcement.AuthorRole)
	})

	t.Run("Filter by type", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Announcements/", founderToken, map[string]interface{}{
			"type":    "Policy",
			"title":   "Badge policy",
			"content": "Badges must be worn at all times.",
		}))
		assert.Equal(t, 201, resp.StatusCode)

		resp, _ = app.Test(jsonRequest("GET", "/api/Announcements/company/ACME1?filter=Policy", generateTestJWT(member), nil))
		data := decodeBody(resp)["data"].([]interface{})
		assert.Len(t, data, 1)
		assert.Equal(t, "Badge policy", data[0].(map[string]interface{})["title"])
	})

	t.Run("Members may not post", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/Announcements/", generateTestJWT(member), map[string]interface{}{
			"type":    "Events",
			"title":   "Fake",
			"content": "Nope",
		}))
		assert.Equal(t, 403, resp.StatusCode)
	})
}
