package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/datatypes"

	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
	"rollout_tracker/internal/services"
)

func installationService() *services.InstallationService {
	return services.NewInstallationService(config.DB)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// kitSlotCount reads the kit inventory; its length is the number of
// final-photo slots expected right now.
func kitSlotCount() (int, error) {
	var count int64
	if err := config.DB.Model(&models.Kit{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// padFinals sizes the final-photo slots to the current kit inventory. A
// submission targets however many kits exist now; slots beyond that are
// dropped, missing ones count as empty.
func padFinals(finals []services.PhotoSlot, kits int) []services.PhotoSlot {
	out := make([]services.PhotoSlot, kits)
	copy(out, finals)
	return out
}

// SubmitInstallation accepts one installer checklist for a store.
func SubmitInstallation(c *gin.Context) {
	var input services.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("SubmitInstallation: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	kits, err := kitSlotCount()
	if err != nil {
		abortServiceError(c, err)
		return
	}
	input.Finals = padFinals(input.Finals, kits)

	inst, err := installationService().Submit(input)
	if err != nil {
		var jr *services.JustificationRequiredError
		if errors.As(err, &jr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":         "justification required",
				"missing_count": jr.MissingCount,
			})
			return
		}
		abortServiceError(c, err)
		return
	}

	geojson, _ := convertWKBToGeoJSON(inst.Location)
	c.JSON(http.StatusOK, gin.H{"installation": inst, "location": geojson})
}

// SubmitInstallationLegacy accepts the old mobile client body, where the
// photo sets arrive as one untyped JSON blob. The blob is normalized to
// per-slot state at this boundary and never stored as-is.
func SubmitInstallationLegacy(c *gin.Context) {
	var body struct {
		StoreCode        string                `json:"store_code" binding:"required"`
		SupplierID       *uint                 `json:"supplier_id"`
		Responsible      string                `json:"responsible"`
		InstallationDate string                `json:"installation_date"`
		Justification    string                `json:"justification"`
		Photos           datatypes.JSON        `json:"photos"`
		Geo              *services.Geolocation `json:"geo"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	original, finals, err := services.NormalizeLegacyPhotos(body.Photos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kits, err := kitSlotCount()
	if err != nil {
		abortServiceError(c, err)
		return
	}

	input := services.SubmissionInput{
		StoreCode:        body.StoreCode,
		SupplierID:       body.SupplierID,
		Responsible:      body.Responsible,
		InstallationDate: body.InstallationDate,
		Original:         original,
		Finals:           padFinals(finals, kits),
		Justification:    body.Justification,
		Geo:              body.Geo,
	}

	inst, err := installationService().Submit(input)
	if err != nil {
		var jr *services.JustificationRequiredError
		if errors.As(err, &jr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":         "justification required",
				"missing_count": jr.MissingCount,
			})
			return
		}
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installation": inst})
}

// GetInstallationStatus reports whether a store has a submission. An
// unknown store answers is_installed=false, not an error.
func GetInstallationStatus(c *gin.Context) {
	storeCode := c.Param("storeCode")
	status, err := installationService().Status(storeCode)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	resp := gin.H{"status": status}
	if status.Installation != nil {
		if geojson, err := convertWKBToGeoJSON(status.Installation.Location); err == nil && geojson != "" {
			resp["location"] = geojson
		}
	}
	c.JSON(http.StatusOK, resp)
}

// FinalizeInstallation marks the store's installation as complete.
func FinalizeInstallation(c *gin.Context) {
	storeCode := c.Param("storeCode")
	if err := installationService().Finalize(storeCode); err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Installation finalized"})
}
