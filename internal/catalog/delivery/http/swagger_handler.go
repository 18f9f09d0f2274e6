package http

// Browse godoc
// @Summary Browse the catalog
// @Description Filter, search and sort the full product list. Facets are combined with AND.
// @Tags Catalog
// @Produce json
// @Param category query string false "Category name, or 'all'"
// @Param min_price query number false "Minimum price (inclusive)"
// @Param max_price query number false "Maximum price (inclusive)"
// @Param colors query string false "Comma-separated colors"
// @Param sizes query string false "Comma-separated sizes"
// @Param in_stock query bool false "Only products in stock"
// @Param on_sale query bool false "Only discounted products"
// @Param rating query int false "Minimum rating (1-5)"
// @Param sort query string false "newest|popularity|rating|price-asc|price-desc|name"
// @Param search query string false "Substring of name, category or description"
// @Success 200 {object} object{success=bool,data=object{products=array,categories=array,total=int,active_filters=int}}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/catalog [get]
func (h *CatalogHandler) BrowseDoc() {}

// Home godoc
// @Summary Storefront home
// @Description Featured products, top categories and new arrivals
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=object{featured=array,categories=array,new_arrivals=array}}
// @Router /api/catalog/home [get]
func (h *CatalogHandler) HomeDoc() {}

// GetProduct godoc
// @Summary Get product detail
// @Description Product with related (same category) and recommended (featured) products
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object{product=object,related=array,recommended=array}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create a product
// @Description Create a new product (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,price=number,original_price=number,image_url=string,category=string,stock_quantity=int,is_featured=bool,rating=number,review_count=int,colors=[]string,sizes=[]string} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/admin/products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// CreateCategory godoc
// @Summary Create a category
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,image_url=string} true "Category data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/admin/categories [post]
func (h *CatalogHandler) CreateCategoryDoc() {}

// ListCategories godoc
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategoriesDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{name=string,price=number,stock_quantity=int} true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/admin/products/{id} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProductDoc() {}
