package httpserver

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Skotchmaster/bargain_shop/internal/middleware/auth"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/internal/util"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_all")

	items, err := h.Svc.ListAll(ctx)
	if err != nil {
		return fail(l, "list_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_own")

	items, err := h.Svc.ListVendorProducts(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "list_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_product", "Invalid product id", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	in, files, err := bindProduct(c)
	if err != nil {
		return badRequest(l, "create_product", err.Error(), err)
	}

	prod, err := h.Svc.CreateProduct(ctx, auth.CurrentUser(c).ID, in, files)
	if err != nil {
		return fail(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", prod.ID.String(), "images", len(prod.Images))
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "update_product", "Invalid product id", err)
	}
	in, files, err := bindProduct(c)
	if err != nil {
		return badRequest(l, "update_product", err.Error(), err)
	}

	prod, err := h.Svc.UpdateProduct(ctx, auth.CurrentUser(c).ID, id, in, files)
	if err != nil {
		return fail(l, "update_product", err)
	}

	l.Info("update_product_success", "product_id", prod.ID.String())
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "delete_product", "Invalid product id", err)
	}
	if err := h.Svc.DeleteProduct(ctx, auth.CurrentUser(c).ID, id); err != nil {
		return fail(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id.String())
	return c.JSON(http.StatusOK, transport.MsgResponse{Msg: "Product deleted"})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	total, docs, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_products", err)
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{
		Data: docs,
		Meta: transport.SearchMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	})
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

// bindProduct reads a product from either a multipart form (with image files)
// or a JSON body. Only fields present in the request are set.
func bindProduct(c echo.Context) (transport.ProductInput, []*multipart.FileHeader, error) {
	var in transport.ProductInput

	ct := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		if err := c.Bind(&in); err != nil {
			return in, nil, fieldError("Invalid body")
		}
		return in, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, fieldError("Invalid form")
	}
	value := func(key string) (string, bool) {
		v, ok := form.Value[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}

	if v, ok := value("name"); ok {
		in.Name = &v
	}
	if v, ok := value("description"); ok {
		in.Description = &v
	}
	if v, ok := value("category"); ok {
		in.Category = &v
	}
	if v, ok := value("price"); ok && strings.TrimSpace(v) != "" {
		p, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return in, nil, fieldError("Invalid price")
		}
		in.Price = &p
	}
	if v, ok := value("stock"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return in, nil, fieldError("Invalid stock")
		}
		in.Stock = &n
	}

	return in, form.File["images"], nil
}
