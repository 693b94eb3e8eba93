package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/services"
)

// HandleMaterialImport reads material lines from an uploaded .csv or .xlsx
// file and returns them for the form to merge.
// Route: POST /budget/materials/import
func HandleMaterialImport() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lang := GetLanguage(e.Request)

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, NoticeNoFile.Message(lang))
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, NoticeNoFile.Message(lang))
		}
		defer file.Close()

		result, err := services.ImportMaterials(file, header.Filename)
		if err != nil {
			log.Printf("material_import: %v", err)
			return ErrorToast(e, http.StatusBadRequest, NoticeBadSheet.Message(lang))
		}

		if len(result.Errors) > 0 {
			SetToast(e, "warning", NoticeRowsSkipped.Message(lang))
		}
		return e.JSON(http.StatusOK, result)
	}
}
