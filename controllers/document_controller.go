package controllers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"orghub-backend/models"
	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DocumentController handles document upload and listing.
type DocumentController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewDocumentController creates a new DocumentController.
func NewDocumentController(db *gorm.DB, activity *services.ActivityService) *DocumentController {
	return &DocumentController{DB: db, Activity: activity}
}

func uploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// documentRow is the listing projection with the owner's name joined.
type documentRow struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Owner      string    `json:"owner"`
	FilePath   string    `json:"filePath"`
	UploadDate time.Time `json:"uploadDate"`
}

// ListByCompany returns the organization's documents plus the shared
// sublist.
func (dc *DocumentController) ListByCompany(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	fetch := func(sharedOnly bool) ([]documentRow, error) {
		rows := make([]documentRow, 0)
		q := dc.DB.Model(&models.Document{}).
			Select("documents.id, documents.name, documents.type, users.first_name || ' ' || users.last_name AS owner, documents.doc_url AS file_path, documents.upload_on AS upload_date").
			Joins("JOIN users ON users.id = documents.upload_by").
			Where("documents.company_code = ?", companyCode)
		if sharedOnly {
			q = q.Where("documents.access = ?", models.DocumentAccessShared)
		}
		err := q.Order("documents.upload_on DESC").Scan(&rows).Error
		return rows, err
	}

	documents, err := fetch(false)
	if err != nil {
		return failJSON(c, err)
	}
	shared, err := fetch(true)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"documents":       documents,
		"sharedDocuments": shared,
	})
}

// storeFile saves a multipart file under the upload directory with a
// timestamped unique name and returns the stored name.
func (dc *DocumentController) storeFile(c *fiber.Ctx) (*multipart.FileHeader, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(uploadDir(), 0o755); err != nil {
		return nil, "", err
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveFile(file, filepath.Join(uploadDir(), storedName)); err != nil {
		return nil, "", err
	}
	return file, storedName, nil
}

// Upload stores a multipart file under the upload directory and records it.
func (dc *DocumentController) Upload(c *fiber.Ctx) error {
	userID, _, companyCode := principal(c)

	access := c.FormValue("access", models.DocumentAccessPrivate)
	if access != models.DocumentAccessPrivate && access != models.DocumentAccessShared {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown access level"})
	}

	file, storedName, err := dc.storeFile(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No file provided"})
	}

	document := models.Document{
		CompanyCode: companyCode,
		Name:        file.Filename,
		Type:        filepath.Ext(file.Filename),
		UploadBy:    userID,
		DocURL:      "/uploads/" + storedName,
		Access:      access,
	}
	if err := dc.DB.Create(&document).Error; err != nil {
		os.Remove(filepath.Join(uploadDir(), storedName))
		return failJSON(c, err)
	}

	dc.Activity.Record(models.ActivityLog{
		Activity:    "New Shared Document: " + document.Name,
		CompanyCode: companyCode,
		StatusType:  document.Type,
		LogType:     models.LogTypeDocument,
	})

	return c.Status(201).JSON(fiber.Map{"success": true, "data": document})
}

// UploadTaskOutput stores a deliverable for a task, links the document to the
// task and moves the task into review.
func (dc *DocumentController) UploadTaskOutput(c *fiber.Ctx) error {
	userID, _, companyCode := principal(c)

	taskID, err := strconv.ParseUint(c.FormValue("task_id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "task_id is required"})
	}

	var task models.Task
	if err := dc.DB.Where("id = ? AND company_code = ?", taskID, companyCode).First(&task).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Task not found"})
	}

	access := c.FormValue("access", models.DocumentAccessPrivate)
	if access != models.DocumentAccessPrivate && access != models.DocumentAccessShared {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown access level"})
	}

	file, storedName, err := dc.storeFile(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No file provided"})
	}

	linkedTask := task.ID
	document := models.Document{
		CompanyCode: companyCode,
		Name:        file.Filename,
		Type:        filepath.Ext(file.Filename),
		UploadBy:    userID,
		TaskID:      &linkedTask,
		DocURL:      "/uploads/" + storedName,
		Access:      access,
	}
	err = dc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
		task.OutputID = &document.ID
		task.Status = models.TaskStatusInReview
		return tx.Save(&task).Error
	})
	if err != nil {
		os.Remove(filepath.Join(uploadDir(), storedName))
		return failJSON(c, err)
	}

	dc.Activity.Record(models.ActivityLog{
		Activity:    "Task Output Submitted: " + task.Title,
		CompanyCode: companyCode,
		StatusType:  task.Status,
		MemberID:    &task.MemberID,
		LogType:     models.LogTypeTask,
	})

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"message":    "Document uploaded successfully",
		"documentId": document.ID,
		"data":       document,
	})
}

// Download streams the stored file back under its original filename, without
// the timestamp prefix the file carries on disk.
func (dc *DocumentController) Download(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	documentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid document ID"})
	}

	var document models.Document
	if err := dc.DB.Where("id = ? AND company_code = ?", documentID, companyCode).First(&document).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Document not found"})
	}

	storedPath := filepath.Join(uploadDir(), filepath.Base(document.DocURL))
	if _, err := os.Stat(storedPath); err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Stored file is missing"})
	}

	return c.Download(storedPath, document.Name)
}

// ListByMember returns the documents a member has uploaded, newest first.
func (dc *DocumentController) ListByMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	rows := make([]documentRow, 0)
	err = dc.DB.Model(&models.Document{}).
		Select("documents.id, documents.name, documents.type, users.first_name || ' ' || users.last_name AS owner, documents.doc_url AS file_path, documents.upload_on AS upload_date").
		Joins("JOIN users ON users.id = documents.upload_by").
		Where("documents.company_code = ? AND documents.upload_by = ?", companyCode, memberID).
		Order("documents.upload_on DESC").
		Scan(&rows).Error
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "documents": rows})
}

// Delete removes a document record and its stored file.
func (dc *DocumentController) Delete(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	documentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid document ID"})
	}

	var document models.Document
	if err := dc.DB.Where("id = ? AND company_code = ?", documentID, companyCode).First(&document).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Document not found"})
	}

	if err := dc.DB.Delete(&document).Error; err != nil {
		return failJSON(c, err)
	}

	// Stored file removal is best-effort; the row is already gone.
	os.Remove(filepath.Join(uploadDir(), filepath.Base(document.DocURL)))

	return c.JSON(fiber.Map{"success": true, "message": "Document deleted successfully"})
}
