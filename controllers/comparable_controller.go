package controllers

import (
	"estatebackend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ComparableControllerI interface {
	UploadComparables(ctx *gin.Context)
}

type comparableController struct {
	comparables services.ComparableServiceI
}

func NewComparableController(comparables services.ComparableServiceI) ComparableControllerI {
	return &comparableController{comparables: comparables}
}

// UploadComparables accepts one or more XLSX sheets of comparable sales and
// returns the extracted price list with its market summary, ready to feed
// into a negotiation analysis.
func (c *comparableController) UploadComparables(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Error parsing form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		ctx.JSON(400, gin.H{"error": "No files found"})
		return
	}

	var prices []float64
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			ctx.JSON(500, gin.H{"error": "Error opening file"})
			return
		}

		parsed, err := c.comparables.ParseComparablesXLSX(src)
		src.Close()
		if err != nil {
			zap.L().Error("Error parsing comparables sheet", zap.String("filename", file.Filename), zap.Error(err))
			ctx.JSON(400, gin.H{"error": "Error parsing comparables sheet: " + file.Filename})
			return
		}
		prices = append(prices, parsed...)
	}

	summary, ok := services.Summarize(prices)
	if !ok {
		ctx.JSON(400, gin.H{"error": "No comparable prices found"})
		return
	}

	ctx.JSON(200, gin.H{
		"comparables": prices,
		"summary":     summary,
	})
}
