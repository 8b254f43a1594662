package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

const productSheetName = "Products"

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity     string                 `json:"entity"`
	Version    string                 `json:"version"`
	Columns    []ImportTemplateColumn `json:"columns"`
	SampleData []map[string]string    `json:"sampleData,omitempty"`
}

// ImportRowError represents an error for a specific row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Success      bool             `json:"success"`
	TotalRows    int              `json:"totalRows"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
	Errors       []ImportRowError `json:"errors,omitempty"`
	CreatedIDs   []string         `json:"createdIds,omitempty"`
}

type ImportHandler struct {
	repo    repository.ProductRepositoryInterface
	subRepo repository.SubcategoryRepositoryInterface
}

func NewImportHandler(repo repository.ProductRepositoryInterface, subRepo repository.SubcategoryRepositoryInterface) *ImportHandler {
	return &ImportHandler{repo: repo, subRepo: subRepo}
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "1.0",
		Columns: []ImportTemplateColumn{
			{Name: "name", Description: "Product name", Required: true, Type: "string", Example: "Addressable Smoke Detector"},
			{Name: "subcategory", Description: "Subcategory slug the product belongs to", Required: true, Type: "string", Example: "smoke-detectors"},
			{Name: "brand", Description: "Brand name", Required: false, Type: "string", Example: "Honeywell"},
			{Name: "sku", Description: "Stock keeping unit", Required: false, Type: "string", Example: "HW-SD-200"},
			{Name: "price", Description: "Unit price with up to 2 decimals", Required: false, Type: "decimal", Example: "149.99"},
			{Name: "pricevisibility", Description: "public or login_required", Required: false, Type: "string", Example: "public"},
			{Name: "description", Description: "Product description", Required: false, Type: "string", Example: "Intelligent addressable smoke detector"},
			{Name: "features", Description: "Feature list, one per line", Required: false, Type: "string", Example: "Dual sensor\nLow-profile housing"},
			{Name: "stock", Description: "On-hand quantity", Required: false, Type: "number", Example: "25"},
			{Name: "ispopular", Description: "Show on the popular list (true/false)", Required: false, Type: "boolean", Example: "false"},
			{Name: "imageref", Description: "Image path or absolute URL", Required: false, Type: "string", Example: "products/hw-sd-200.jpg"},
			{Name: "documentationurl", Description: "Datasheet path or absolute URL", Required: false, Type: "string", Example: "docs/hw-sd-200.pdf"},
		},
		SampleData: []map[string]string{
			{
				"name":             "Addressable Smoke Detector",
				"subcategory":      "smoke-detectors",
				"brand":            "Honeywell",
				"sku":              "HW-SD-200",
				"price":            "149.99",
				"pricevisibility":  "public",
				"description":      "Intelligent addressable smoke detector",
				"features":         "Dual sensor",
				"stock":            "25",
				"ispopular":        "false",
				"imageref":         "",
				"documentationurl": "",
			},
		},
	}
}

// GetImportTemplate returns the import template definition or file
// GET /api/v1/admin/products/import/template
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := ProductImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)

	for _, sample := range template.SampleData {
		row := make([]string, len(template.Columns))
		for i, col := range template.Columns {
			row[i] = sample[col.Name]
		}
		writer.Write(row)
	}
}

func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", productSheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(productSheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(productSheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(productSheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(productSheetName, colName, colName, 20)
	}

	for rowIdx, sample := range template.SampleData {
		for colIdx, col := range template.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(productSheetName, cell, sample[col.Name])
		}
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Product Import Instructions")
	f.SetCellValue("Instructions", "A3", "Column Definitions:")

	for i, col := range template.Columns {
		row := i + 4
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 20)
	f.SetColWidth("Instructions", "B", "B", 40)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(productSheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")

	f.Write(c.Writer)
}

// ImportProducts imports products from a CSV or Excel file
// POST /api/v1/admin/products/import
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a CSV or Excel file", "file")
		return
	}
	defer file.Close()

	validateOnly := c.DefaultPostForm("validateOnly", "false") == "true"

	filename := strings.ToLower(header.Filename)
	var format ImportFormat
	switch {
	case strings.HasSuffix(filename, ".csv"):
		format = ImportFormatCSV
	case strings.HasSuffix(filename, ".xlsx"):
		format = ImportFormatXLSX
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only CSV and XLSX files are supported", "file")
		return
	}

	var rows []map[string]string
	var parseErr error
	if format == ImportFormatCSV {
		rows, parseErr = parseCSVRows(file)
	} else {
		rows, parseErr = parseXLSXRows(file)
	}
	if parseErr != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", parseErr.Error(), "file")
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data rows", "file")
		return
	}

	result, err := h.processImportRows(c, rows, validateOnly)
	if err != nil {
		respondInternal(c, "Failed to resolve subcategory references")
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseCSVRows(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}
	return rows, nil
}

func parseXLSXRows(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, productSheetName) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}
}

// processImportRows validates and creates products. A row naming an unknown
// subcategory aborts the whole import before anything is written; per-row
// format problems only fail their own row. A non-nil error means the lookup
// backend failed, not that the input was bad.
func (h *ImportHandler) processImportRows(c *gin.Context, rows []map[string]string, validateOnly bool) (*ImportResult, error) {
	result := &ImportResult{
		TotalRows:  len(rows),
		Errors:     make([]ImportRowError, 0),
		CreatedIDs: make([]string, 0),
	}

	// Resolve every subcategory reference before creating anything.
	subcategories := make(map[string]*models.Subcategory)
	for _, row := range rows {
		ref := row["subcategory"]
		if ref == "" {
			continue
		}
		if _, ok := subcategories[ref]; ok {
			continue
		}
		subcategory, err := h.subRepo.GetBySlug(c.Request.Context(), ref)
		if err != nil {
			if !errors.Is(err, repository.ErrSubcategoryNotFound) {
				return nil, err
			}
			rowNum, _ := strconv.Atoi(row["_row"])
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Column: "subcategory", Code: "UNKNOWN_SUBCATEGORY", Message: fmt.Sprintf("Subcategory '%s' does not exist", ref)})
			result.FailedCount = result.TotalRows
			return result, nil
		}
		subcategories[ref] = subcategory
	}

	for _, row := range rows {
		rowNum, _ := strconv.Atoi(row["_row"])

		if row["name"] == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Column: "name", Code: "REQUIRED_FIELD", Message: "Required field 'name' is empty"})
			continue
		}
		if row["subcategory"] == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Column: "subcategory", Code: "REQUIRED_FIELD", Message: "Required field 'subcategory' is empty"})
			continue
		}
		subcategory := subcategories[row["subcategory"]]

		product := &models.Product{
			ID:              uuid.New(),
			Name:            row["name"],
			Description:     row["description"],
			Features:        row["features"],
			SubcategoryID:   subcategory.ID,
			PriceVisibility: models.PricePublic,
		}

		if row["brand"] != "" {
			product.Brand = stringPtr(row["brand"])
		}
		if row["sku"] != "" {
			product.SKU = stringPtr(row["sku"])
		}
		if row["price"] != "" {
			price, err := decimal.NewFromString(row["price"])
			if err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Column: "price", Code: "INVALID_PRICE", Message: "Price must be a decimal number"})
				continue
			}
			product.Price = &price
		}
		if row["pricevisibility"] == string(models.PriceLoginRequired) {
			product.PriceVisibility = models.PriceLoginRequired
		}
		if row["stock"] != "" {
			stock, err := strconv.Atoi(row["stock"])
			if err != nil || stock < 0 {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Column: "stock", Code: "INVALID_STOCK", Message: "Stock must be a non-negative integer"})
				continue
			}
			product.Stock = stock
		}
		if row["ispopular"] != "" {
			product.IsPopular = strings.EqualFold(row["ispopular"], "true")
		}
		if row["imageref"] != "" {
			product.ImageRef = stringPtr(row["imageref"])
		}
		if row["documentationurl"] != "" {
			product.DocumentationURL = stringPtr(row["documentationurl"])
		}

		if validateOnly {
			result.SuccessCount++
			continue
		}

		if err := h.repo.Create(c.Request.Context(), product, nil); err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Code: "CREATE_FAILED", Message: err.Error()})
			continue
		}

		result.CreatedIDs = append(result.CreatedIDs, product.ID.String())
		result.SuccessCount++
	}

	result.FailedCount = result.TotalRows - result.SuccessCount
	result.Success = result.FailedCount == 0
	return result, nil
}

// ExportProducts streams the full product list as an Excel workbook
// POST /api/v1/admin/products/export
func (h *ImportHandler) ExportProducts(c *gin.Context) {
	page := repository.NormalizePage(1, repository.MaxPageSize)

	var all []models.Product
	for {
		products, total, err := h.repo.ListAll(c.Request.Context(), page)
		if err != nil {
			respondInternal(c, "Failed to export products")
			return
		}
		all = append(all, products...)
		if int64(len(all)) >= total || len(products) == 0 {
			break
		}
		page.Number++
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", productSheetName)

	headers := []string{"name", "slug", "subcategory", "brand", "sku", "price", "pricevisibility", "status", "stock", "ispopular"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(productSheetName, cell, header)
	}

	for rowIdx, product := range all {
		subSlug := ""
		if product.Subcategory != nil {
			subSlug = product.Subcategory.Slug
		}
		price := ""
		if product.Price != nil {
			price = product.Price.StringFixed(2)
		}
		values := []interface{}{
			product.Name, product.Slug, subSlug,
			deref(product.Brand), deref(product.SKU), price,
			string(product.PriceVisibility), string(models.StatusForStock(product.Stock)),
			product.Stock, product.IsPopular,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(productSheetName, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=products_export.xlsx")

	f.Write(c.Writer)
}

func stringPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
