package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"trylocal/services/business"
	"trylocal/services/storage"
	"trylocal/utils"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles listing-photo uploads.
type StorageHandler struct {
	StorageSvc  storage.StorageService
	BusinessSvc business.BusinessService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(storageSvc storage.StorageService, businessSvc business.BusinessService) *StorageHandler {
	return &StorageHandler{
		StorageSvc:  storageSvc,
		BusinessSvc: businessSvc,
	}
}

// UploadPhotoHandler uploads a listing photo for the authenticated owner
// and records its URL on the business document.
func (h *StorageHandler) UploadPhotoHandler(c *gin.Context) {
	businessID := c.GetString("businessID")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "photo not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadPhoto(c.Request.Context(), tempFilePath, "listings/"+businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		return
	}

	photoURL, err := h.StorageSvc.GetPhotoURL(publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct photo URL"})
		return
	}

	update := business.ProfileUpdate{PhotoURL: &photoURL}
	if err := h.BusinessSvc.UpdateProfile(c.Request.Context(), businessID, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record photo URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photoUrl": photoURL})
}
