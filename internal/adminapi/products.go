package adminapi

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gemtrack/gemtrack/internal/service"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"github.com/labstack/echo/v4"
)

// registerProductRoutes registers inventory product endpoints
func registerProductRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/inventory/products", listProducts)
	srv.ApiGET("/inventory/products/export", exportProducts, requireAdmin)
	srv.ApiGET("/inventory/products/low-stock/count", lowStockCount)
	srv.ApiGET("/inventory/products/:id", getProduct)
	srv.ApiGET("/inventory/products/:id/categories", getProductCategories)
	srv.ApiPOST("/inventory/products", createProduct, requireAdmin)
	srv.ApiPATCH("/inventory/products/:id", updateProduct, requireAdmin)
	srv.ApiDELETE("/inventory/products/:id", deleteProduct, requireAdmin)
}

// listProducts serves three modes: q searches, filter narrows by tag,
// otherwise a page of the catalog.
func listProducts(c echo.Context) error {
	ctx := c.Request().Context()
	products := GetServices(c).Products

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		rows, err := products.SearchProducts(ctx, q)
		if err != nil {
			return failErr(c, err, "Failed to search products")
		}
		return paged(c, rows, int64(len(rows)), 1, len(rows))
	}
	if filter := strings.TrimSpace(c.QueryParam("filter")); filter != "" {
		rows, err := products.GetProductsByFilter(ctx, filter)
		if err != nil {
			return failErr(c, err, "Failed to filter products")
		}
		return paged(c, rows, int64(len(rows)), 1, len(rows))
	}

	page, pageSize := parsePagination(c)
	rows, total, err := products.GetProductsPage(ctx, page, pageSize)
	if err != nil {
		return failErr(c, err, "Failed to query products")
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := GetServices(c).Products.GetProductDetails(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to query product")
	}
	if p == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func getProductCategories(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	rows, err := GetServices(c).Categories.GetCategoriesByProductID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to query categories")
	}
	return ok(c, rows)
}

func createProduct(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	input, err := service.DecodeProductInput(body)
	if err != nil {
		return failErr(c, err, "Invalid product")
	}
	p, err := GetServices(c).Products.CreateNewProduct(c.Request().Context(), input)
	if err != nil {
		return failErr(c, err, "Failed to create product")
	}
	return created(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	patch, err := service.DecodeProductPatch(body)
	if err != nil {
		return failErr(c, err, "Invalid product")
	}
	p, err := GetServices(c).Products.UpdateExistingProduct(c.Request().Context(), id, patch)
	if err != nil {
		return failErr(c, err, "Failed to update product")
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	removed, err := GetServices(c).Products.RemoveProduct(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "Failed to delete product")
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}

// exportProducts renders the whole CSV before answering so a failed query
// still gets an error status.
func exportProducts(c echo.Context) error {
	var buf bytes.Buffer
	if err := GetServices(c).Products.ExportCSV(c.Request().Context(), &buf); err != nil {
		return failErr(c, err, "Failed to export products")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func lowStockCount(c echo.Context) error {
	products := GetServices(c).Products
	count, err := products.LowStockCount(c.Request().Context())
	if err != nil {
		return failErr(c, err, "Failed to count products")
	}
	return ok(c, map[string]interface{}{
		"count":     count,
		"threshold": products.LowStockThreshold(),
	})
}
