package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"msme-ai-engine/pkg/models"
	"msme-ai-engine/pkg/storage"
)

// AdminHandler serves catalogue administration endpoints.
type AdminHandler struct {
	products storage.ProductStore
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(products storage.ProductStore) *AdminHandler {
	return &AdminHandler{
		products: products,
	}
}

// ImportProducts bulk-loads product records from an uploaded .xlsx or .csv
// file. Expected columns: product_name, base_sales, stock_quantity; the
// two numeric columns are optional per row.
func (h *AdminHandler) ImportProducts(c *gin.Context) {
	c.Request.ParseMultipartForm(10 << 20) // 10MB limit

	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	var rows [][]string
	fileName := strings.ToLower(fileHeader.Filename)

	if strings.HasSuffix(fileName, ".xlsx") {
		f, err := excelize.OpenReader(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to open Excel file",
			})
			return
		}
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to read Excel sheet rows",
			})
			return
		}
	} else if strings.HasSuffix(fileName, ".csv") {
		r := csv.NewReader(file)
		rows, err = r.ReadAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to parse CSV file",
			})
			return
		}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Unsupported file format, upload .xlsx or .csv",
		})
		return
	}

	if len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "File needs a header row and at least one data row",
		})
		return
	}

	header := rows[0]
	nameCol := findColumn(header, "product_name", "name")
	baseSalesCol := findColumn(header, "base_sales")
	stockCol := findColumn(header, "stock_quantity", "stock")

	if nameCol < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing product_name column",
		})
		return
	}

	imported := 0
	skipped := 0
	for _, row := range rows[1:] {
		if nameCol >= len(row) || strings.TrimSpace(row[nameCol]) == "" {
			skipped++
			continue
		}

		product := models.Product{
			ID:            uuid.New(),
			Name:          strings.TrimSpace(row[nameCol]),
			BaseSales:     parseOptionalFloat(row, baseSalesCol),
			StockQuantity: parseOptionalFloat(row, stockCol),
		}

		if err := h.products.Upsert(c.Request.Context(), product); err != nil {
			log.Printf("⚠ Failed to import product %q: %v", product.Name, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("📦 Product import finished: %d imported, %d skipped", imported, skipped)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": imported,
		"skipped":  skipped,
	})
}

// findColumn finds the index of the first matching header name.
func findColumn(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

func parseOptionalFloat(row []string, col int) *float64 {
	if col < 0 || col >= len(row) {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return nil
	}
	return &value
}
