package main

import (
	"testing"

	"orghub-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRegisterOrganization(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)

	payload := map[string]interface{}{
		"organization_name": "Globex",
		"company_code":      "GLBX",
		"industry":          "Manufacturing",
		"address":           "12 Factory Lane",
		"first_name":        "Hank",
		"last_name":         "Scorpio",
		"email":             "hank@globex.test",
		"password":          "volcano1",
	}

	t.Run("Register creates organization and founder", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/api/Organization/register", "", payload))
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		body := decodeBody(resp)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["token"])

		user := body["user"].(map[string]interface{})
		assert.Equal(t, models.RoleFounder, user["role"])
		assert.Equal(t, "GLBX", user["company_code"])

		var org models.Organization
		assert.NoError(t, db.Where("company_code = ?", "GLBX").First(&org).Error)

		var founder models.User
		assert.NoError(t, db.Where("email = ?", "hank@globex.test").First(&founder).Error)
		assert.NotEqual(t, "volcano1", founder.PasswordHash)
	})

	t.Run("Duplicate company code rejected", func(t *testing.T) {
		dup := map[string]interface{}{}
		for k, v := range payload {
			dup[k] = v
		}
		dup["email"] = "other@globex.test"

		resp, _ := app.Test(jsonRequest("POST", "/api/Organization/register", "", dup))
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("Short password rejected", func(t *testing.T) {
		bad := map[string]interface{}{}
		for k, v := range payload {
			bad[k] = v
		}
		bad["company_code"] = "NEWCO"
		bad["email"] = "new@newco.test"
		bad["password"] = "abc"

		resp, _ := app.Test(jsonRequest("POST", "/api/Organization/register", "", bad))
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, _ := createTestOrg(db, "ACME1")

	t.Run("Valid credentials issue a token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/api/login", "", map[string]interface{}{
			"email":    founder.Email,
			"password": "password123",
		}))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(resp)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "ACME1", user["company_code"])
	})

	t.Run("Wrong password rejected", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/login", "", map[string]interface{}{
			"email":    founder.Email,
			"password": "wrong-password",
		}))
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Unknown email rejected with the same message", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/api/login", "", map[string]interface{}{
			"email":    "nobody@acme1.test",
			"password": "password123",
		}))
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, "Invalid email or password", decodeBody(resp)["error"])
	})

	t.Run("Inactive account rejected", func(t *testing.T) {
		db.Model(&models.User{}).Where("id = ?", founder.ID).Update("status", models.UserStatusInactive)
		defer db.Model(&models.User{}).Where("id = ?", founder.ID).Update("status", models.UserStatusActive)

		resp, _ := app.Test(jsonRequest("POST", "/api/login", "", map[string]interface{}{
			"email":    founder.Email,
			"password": "password123",
		}))
		assert.Equal(t, 403, resp.StatusCode)
	})
}

func TestSession(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	founder, _ := createTestOrg(db, "ACME1")

	t.Run("Valid token echoes the principal", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/session", generateTestJWT(founder), nil))
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(resp)
		assert.Equal(t, true, body["loggedIn"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "Fiona", user["first_name"])
	})

	t.Run("Missing token means logged out", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/session", "", nil))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, false, decodeBody(resp)["loggedIn"])
	})

	t.Run("Garbage token means logged out", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/session", "not-a-jwt", nil))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, false, decodeBody(resp)["loggedIn"])
	})
}

func TestAuthMiddleware(t *testing.T) {
	db := setupTestDB()
	app, _ := createTestApp(db)
	createTestOrg(db, "ACME1")

	t.Run("Protected route without token", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/Inventory/company/ACME1", "", nil))
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Protected route with malformed token", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("GET", "/api/Inventory/company/ACME1", "bad.token.value", nil))
		assert.Equal(t, 401, resp.StatusCode)
	})
}
