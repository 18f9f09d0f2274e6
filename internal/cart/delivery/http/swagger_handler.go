package http

// GetCart godoc
// @Summary Get the session cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} object{success=bool,data=object{items=array,total=string,item_count=int}}
// @Router /api/cart [get]
func (h *CartHandler) GetCartDoc() {}

// AddItem godoc
// @Summary Add one unit of a product
// @Description Adds a line for the product and variant, or increments the existing one
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body object{product_id=string,color=string,size=string} true "Item"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/items [post]
func (h *CartHandler) AddItemDoc() {}

// UpdateQuantity godoc
// @Summary Set a line quantity
// @Description Zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body object{quantity=int,color=string,size=string} true "Quantity"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantityDoc() {}

// RemoveItem godoc
// @Summary Remove a line
// @Tags Cart
// @Produce json
// @Param id path string true "Product ID"
// @Param color query string false "Variant color"
// @Param size query string false "Variant size"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItemDoc() {}

// ClearCart godoc
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart [delete]
func (h *CartHandler) ClearCartDoc() {}
