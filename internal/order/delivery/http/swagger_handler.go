package http

// GetMyOrders godoc
// @Summary List my orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/orders [get]
func (h *OrderHandler) GetMyOrdersDoc() {}

// GetOrder godoc
// @Summary Get one of my orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrderDoc() {}

// ListOrders godoc
// @Summary List all orders
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/admin/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}

// UpdateStatus godoc
// @Summary Change an order status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body object{status=string} true "pending|processing|shipped|delivered|cancelled"
// @Success 200 {object} object{success=bool,data=object{id=string,status=string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatusDoc() {}
