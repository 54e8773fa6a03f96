package main

import (
	"testing"

	"orghub-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceCreate(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	founderToken := generateTestJWT(founder)

	resp, _ := app.Test(jsonRequest("POST", "/api/Tasks/", founderToken, map[string]interface{}{
		"member_id": member.ID,
		"title":     "Inventory recount",
	}))
	assert.Equal(t, 201, resp.StatusCode)

	t.Run("Rating a task marks it Completed", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/api/user_performance/", founderToken, map[string]interface{}{
			"member_id": member.ID,
			"task_id":   1,
			"rating":    4,
			"remarks":   "Counted everything twice, no discrepancies.",
		}))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var performance models.UserPerformance
		assert.NoError(t, db.First(&performance, 1).Error)
		assert.Equal(t, 4, performance.Rating)
		assert.Equal(t, member.ID, performance.MemberID)

		var task models.Task
		db.First(&task, 1)
		assert.Equal(t, models.TaskStatusCompleted, task.Status)
	})

	t.Run("Rating out of range rejected", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			resp, _ := app.Test(jsonRequest("POST", "/api/user_performance/", founderToken, map[string]interface{}{
				"member_id": member.ID,
				"task_id":   1,
				"rating":    rating,
			}))
			assert.Equal(t, 400, resp.StatusCode)
		}
	})

	t.Run("Task of another member rejected", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/user_performance/", founderToken, map[string]interface{}{
			"member_id": founder.ID,
			"task_id":   1,
			"rating":    3,
		}))
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Members may not rate", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/user_performance/", generateTestJWT(member), map[string]interface{}{
			"member_id": member.ID,
			"task_id":   1,
			"rating":    5,
		}))
		assert.Equal(t, 403, resp.StatusCode)
	})
}

func TestPerformanceListings(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, member := createTestOrg(db, "ACME1")
	founderToken := generateTestJWT(founder)

	for i, rating := range []int{3, 5} {
		resp, _ := app.Test(jsonRequest("POST", "/api/Tasks/", founderToken, map[string]interface{}{
			"member_id": member.ID,
			"title":     "Task " + string(rune('A'+i)),
		}))
		assert.Equal(t, 201, resp.StatusCode)

		resp, _ = app.Test(jsonRequest("POST", "/api/user_performance/", founderToken, map[string]interface{}{
			"member_id": member.ID,
			"task_id":   i + 1,
			"rating":    rating,
		}))
		assert.Equal(t, 201, resp.StatusCode)
	}

	t.Run("Member listing carries the output rate", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/user_performance/2", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(resp)
		rows := body["data"].([]interface{})
		assert.Len(t, rows, 2)
		assert.Equal(t, "Milo Member", rows[0].(map[string]interface{})["memberName"])

		rate := body["outputRate"].(map[string]interface{})
		assert.Equal(t, float64(2), rate["totalTasks"])
		assert.Equal(t, float64(2), rate["completedTasks"])
		assert.Equal(t, float64(4), rate["averageRating"])
	})

	t.Run("Member with no records", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/user_performance/1", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(resp)
		assert.Len(t, body["data"].([]interface{}), 0)
		rate := body["outputRate"].(map[string]interface{})
		assert.Nil(t, rate["averageRating"])
	})

	t.Run("Task listing", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/user_performance/task/1", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)

		rows := decodeBody(resp)["data"].([]interface{})
		assert.Len(t, rows, 1)
		assert.Equal(t, float64(3), rows[0].(map[string]interface{})["rating"])
	})

	t.Run("Profile aggregation includes the average rating", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/Users/2", founderToken, nil))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, float64(4), decodeBody(resp)["averageRating"])
	})
}
