package controllers

import (
	"strconv"

	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
)

// ItemRequestController exposes the request workflow over HTTP.
type ItemRequestController struct {
	Requests *services.RequestService
}

// NewItemRequestController creates a new ItemRequestController.
func NewItemRequestController(requests *services.RequestService) *ItemRequestController {
	return &ItemRequestController{Requests: requests}
}

// SubmitRequestBody is the submission payload.
type SubmitRequestBody struct {
	ItemID   uint   `json:"itemId"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// Submit files a new Pending request for the authenticated member.
func (rc *ItemRequestController) Submit(c *fiber.Ctx) error {
	userID, _, companyCode := principal(c)

	var req SubmitRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	request, err := rc.Requests.Submit(companyCode, userID, req.ItemID, req.Quantity, req.Reason)
	if err != nil {
		return failJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Item request created successfully",
		"data":    request,
	})
}

// ListPending returns the organization's unresolved requests with item and
// requester names joined.
func (rc *ItemRequestController) ListPending(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	requests, err := rc.Requests.ListPending(companyCode)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": requests})
}

// ListByUser returns every request a member has submitted.
func (rc *ItemRequestController) ListByUser(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	requests, err := rc.Requests.ListByRequester(companyCode, uint(userID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": requests})
}

// Get returns one request with its display projection, for receipts and
// audit views.
func (rc *ItemRequestController) Get(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	requestID, err := strconv.ParseUint(c.Params("requestId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request ID"})
	}

	detail, err := rc.Requests.Get(companyCode, uint(requestID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": detail})
}

// Approve resolves a Pending request and decrements the item's stock
// atomically. A shortage or a double resolution comes back 409 with the
// exact business message and leaves all state untouched.
func (rc *ItemRequestController) Approve(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	requestID, err := strconv.ParseUint(c.Params("requestId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request ID"})
	}

	request, err := rc.Requests.Approve(companyCode, uint(requestID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item request fulfilled and stock updated successfully",
		"data":    request,
	})
}

// Reject resolves a Pending request without touching the ledger.
func (rc *ItemRequestController) Reject(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	requestID, err := strconv.ParseUint(c.Params("requestId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request ID"})
	}

	request, err := rc.Requests.Reject(companyCode, uint(requestID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item request rejected successfully",
		"data":    request,
	})
}
