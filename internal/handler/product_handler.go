package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-catalog-api/internal/apierror"
	"go-catalog-api/internal/service"
)

type ProductHandler struct {
	service service.ProductService
	images  service.ImageService
}

func NewProductHandler(productService service.ProductService, imageService service.ImageService) *ProductHandler {
	return &ProductHandler{service: productService, images: imageService}
}

// GetProducts returns all products
// GET /product
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.FindAll()
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(products)
}

// GetProduct returns a single product by ID
// GET /product/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}
	product, err := h.service.FindByID(id)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(product)
}

// GetProductsByUser lists the products owned by one user
// GET /product/user/:userId
func (h *ProductHandler) GetProductsByUser(c *fiber.Ctx) error {
	products, err := h.service.FindByUser(c.Params("userId"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(products)
}

// GetProductImages lists a product's stored image references
// GET /product/:id/images
func (h *ProductHandler) GetProductImages(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}
	images, err := h.service.Images(id)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(images)
}

// GetImage streams one stored image back by filename
// GET /product/images/:filename
func (h *ProductHandler) GetImage(c *fiber.Ctx) error {
	path, err := h.images.ImagePath(c.Params("filename"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.SendFile(path)
}

// CheckImages lists every file present in the upload directory
// GET /product/check-images
func (h *ProductHandler) CheckImages(c *fiber.Ctx) error {
	files, err := h.images.ListImages()
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(files)
}

// CreateProduct handles multipart product creation: a "product" part
// with the JSON draft plus optional "images" file parts
// POST /product
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	req, err := h.parseProductForm(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	product, err := h.service.Save(c.UserContext(), req)
	if err != nil {
		return apierror.Respond(c, err)
	}

	c.Location(fmt.Sprintf("/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles multipart product update, same shape as create
// PUT /product/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}
	req, err := h.parseProductForm(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	product, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct handles product deletion
// DELETE /product/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return apierror.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductForm reads the draft from the "product" part, stores any
// uploaded images and replaces the draft's image references with the
// stored ones.
func (h *ProductHandler) parseProductForm(c *fiber.Ctx) (*service.ProductRequest, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apierror.BadRequest("Requisição multipart inválida")
	}

	values := form.Value["product"]
	if len(values) == 0 || values[0] == "" {
		return nil, apierror.BadRequest("A parte product é obrigatória")
	}

	var req service.ProductRequest
	if err := json.Unmarshal([]byte(values[0]), &req); err != nil {
		return nil, apierror.BadRequest("JSON inválido")
	}

	if req.UserID == "" {
		if v := form.Value["userId"]; len(v) > 0 {
			req.UserID = v[0]
		}
	}
	if req.UserID == "" {
		req.UserID = c.Query("userId")
	}

	names, err := h.images.StoreImages(form.File["images"])
	if err != nil {
		return nil, err
	}
	req.Images = names
	return &req, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apierror.BadRequest("Identificador inválido")
	}
	return id, nil
}
