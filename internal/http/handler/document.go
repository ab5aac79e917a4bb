package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/service"
)

// UploadResponse is returned after a document has been extracted and stored.
type UploadResponse struct {
	DocID   string `json:"docId" example:"doc_01920b6e-4c1a-7cc2-9d4b-5f0e8a7b1c2d"`
	Message string `json:"message" example:"File uploaded and processed."`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	DocID    string `json:"docId" example:"doc_01920b6e-4c1a-7cc2-9d4b-5f0e8a7b1c2d"`
	Question string `json:"question" example:"What is the termination notice period?"`
}

// AskResponse carries the completion text unmodified.
type AskResponse struct {
	Answer string `json:"answer"`
}

// UploadDocument godoc
// @Summary Upload a document
// @Description Extracts text from a PDF or plain-text file and keeps it in memory.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or text file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", msgNoFile)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "EXTRACTION_FAILED", msgProcessFailed)
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrValidation):
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", msgNoFile)
			case errors.Is(err, service.ErrExtraction):
				return writeError(c, fiber.StatusInternalServerError, "EXTRACTION_FAILED", msgProcessFailed)
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msgProcessFailed)
			}
		}

		return c.JSON(UploadResponse{DocID: doc.ID, Message: msgUploaded})
	}
}

// AskQuestion godoc
// @Summary Ask a question about a document
// @Description Answers using only the text of the referenced document.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body AskRequest true "Document id and question"
// @Success 200 {object} AskResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /ask [post]
func AskQuestion(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AskRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_REQUEST", msgAskRequired)
		}

		answer, err := docSvc.Ask(c.UserContext(), req.DocID, req.Question)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrValidation):
				return writeError(c, fiber.StatusBadRequest, "INVALID_REQUEST", msgAskRequired)
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", msgDocNotFound)
			case errors.Is(err, service.ErrUpstream):
				return writeError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR", msgAnswerFailed)
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msgAnswerFailed)
			}
		}

		return c.JSON(AskResponse{Answer: answer})
	}
}
