package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mapstacks/geoupload/forms"
	"github.com/mapstacks/geoupload/middleware"
	"github.com/mapstacks/geoupload/models"
	"github.com/mapstacks/geoupload/utils"
)

// UploadController validates dataset uploads and records accepted sessions.
type UploadController struct {
	db         *gorm.DB
	classifier forms.BundleClassifier
}

// NewUploadController creates an UploadController with the given bundle classifier.
func NewUploadController(db *gorm.DB, classifier forms.BundleClassifier) *UploadController {
	return &UploadController{db: db, classifier: classifier}
}

func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Create validates a multipart dataset upload and persists an upload session on success.
func (u *UploadController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	mf, err := ctx.MultipartForm()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid multipart form")
		return
	}

	form, err := buildUploadForm(mf)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, err.Error())
		return
	}

	cleaned, err := form.Clean(&sizeLimitSource{db: u.db}, u.classifier)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			utils.Error(ctx, http.StatusBadRequest, 40062, verr.Message)
			return
		}
		utils.Sugar.Errorf("upload validation failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to validate upload")
		return
	}

	validExtensions, _ := cleaned["valid_extensions"].([]string)
	session := models.UploadSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		DatasetTitle:    form.DatasetTitle,
		Abstract:        form.Abstract,
		BaseFileName:    form.Files["base_file"].Name,
		Charset:         form.Charset,
		ValidExtensions: strings.Join(validExtensions, ","),
		TotalSize:       form.TotalSize(),
		Mosaic:          form.Mosaic,
		TimeEnabled:     form.Time,
	}
	if err := u.db.Create(&session).Error; err != nil {
		utils.Sugar.Errorf("failed to persist upload session: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to record upload")
		return
	}

	utils.Sugar.Infof("accepted upload session %s (user=%d, size=%d, extensions=%s)",
		session.ID, userID, session.TotalSize, session.ValidExtensions)
	utils.Success(ctx, gin.H{
		"session":          session,
		"valid_extensions": validExtensions,
	})
}

// Get returns a persisted upload session owned by the caller.
func (u *UploadController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40063, "missing session id")
		return
	}
	var session models.UploadSession
	if err := u.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40460, "upload session not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to get upload session")
		return
	}
	if session.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40360, "not your upload session")
		return
	}
	utils.Success(ctx, session)
}

type timeAttributesRequest struct {
	forms.TimeFormConfig
	forms.TimeInput
}

// TimeAttributes builds a time form from the supplied candidate lists and
// validates the submitted selection against it.
func (u *UploadController) TimeAttributes(ctx *gin.Context) {
	var req timeAttributesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40064, "invalid request payload")
		return
	}

	form := req.TimeFormConfig.Build()
	selection, err := form.Clean(req.TimeInput)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			utils.Error(ctx, http.StatusBadRequest, 40065, verr.Message)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to validate time attributes")
		return
	}

	utils.Success(ctx, gin.H{
		"selection":  selection,
		"fields":     form.Fields(),
		"time_names": form.TimeNames(),
		"text_names": form.TextNames(),
		"year_names": form.YearNames(),
	})
}

// SRS validates a spatial reference system selection.
func (u *UploadController) SRS(ctx *gin.Context) {
	var form forms.SRSForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40066, "invalid request payload")
		return
	}
	if err := form.Clean(); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			utils.Error(ctx, http.StatusBadRequest, 40067, verr.Message)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to validate srs")
		return
	}
	utils.Success(ctx, form)
}

// buildUploadForm maps a multipart form onto the dataset upload form. Only
// the first file per field is considered.
func buildUploadForm(mf *multipart.Form) (*forms.DatasetUploadForm, error) {
	value := func(key string) string {
		if vs, ok := mf.Value[key]; ok && len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	// Checkbox semantics: empty and the explicit falsy values are false,
	// anything else submitted counts as true.
	boolValue := func(key string) bool {
		switch strings.ToLower(value(key)) {
		case "", "false", "0":
			return false
		}
		return true
	}
	intValue := func(key string) (int, error) {
		raw := value(key)
		if raw == "" {
			return 0, nil
		}
		return strconv.Atoi(raw)
	}

	res, err := intValue("time_presentation_res")
	if err != nil {
		return nil, errors.New("time_presentation_res must be an integer")
	}

	var permissions map[string]any
	if raw := value("permissions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &permissions); err != nil {
			return nil, errors.New("permissions must be a JSON object")
		}
	}

	files := map[string]forms.FileInfo{}
	for field, headers := range mf.File {
		if len(headers) == 0 {
			continue
		}
		files[field] = forms.FileInfo{Name: headers[0].Filename, Size: headers[0].Size}
	}

	return &forms.DatasetUploadForm{
		Charset:                        value("charset"),
		Time:                           boolValue("time"),
		Mosaic:                         boolValue("mosaic"),
		AppendToMosaicOpts:             boolValue("append_to_mosaic_opts"),
		AppendToMosaicName:             value("append_to_mosaic_name"),
		MosaicTimeRegex:                value("mosaic_time_regex"),
		MosaicTimeValue:                value("mosaic_time_value"),
		TimePresentation:               value("time_presentation"),
		TimePresentationRes:            res,
		TimePresentationDefaultValue:   value("time_presentation_default_value"),
		TimePresentationReferenceValue: value("time_presentation_reference_value"),
		Abstract:                       utils.Sanitize(value("abstract")),
		DatasetTitle:                   utils.SanitizeStrict(value("dataset_title")),
		Permissions:                    permissions,
		MetadataUploadedPreserve:       boolValue("metadata_uploaded_preserve"),
		MetadataUploadForm:             boolValue("metadata_upload_form"),
		StyleUploadForm:                boolValue("style_upload_form"),
		Files:                          files,
	}, nil
}
