package http

// Summary godoc
// @Summary Price the session cart
// @Description Subtotal, shipping (free from the configured threshold) and total
// @Tags Checkout
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} object{success=bool,data=object{items=array,item_count=int,subtotal=string,shipping=string,total=string,currency=string}}
// @Router /api/checkout/summary [get]
func (h *CheckoutHandler) SummaryDoc() {}

// Checkout godoc
// @Summary Place an order from the session cart
// @Description Creates one order, then empties the cart. Anonymous callers receive a sign-in redirect.
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{email=string,first_name=string,last_name=string,address=string,city=string,postal_code=string,country=string} true "Shipping address"
// @Success 201 {object} object{success=bool,data=object{order=object,redirect=string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string,data=object{redirect=string}}
// @Failure 409 {object} object{success=bool,error=string}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/checkout [post]
func (h *CheckoutHandler) CheckoutDoc() {}
