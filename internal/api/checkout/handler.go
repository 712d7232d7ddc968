package checkout

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/M-a-K-s-1-M/neshopify-sub001/config"
	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/carts"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/products"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// ------------------------------
// POST /sites/:siteId/checkout (customer)
// ------------------------------
//
// Turns the customer's cart into a Stripe Checkout Session in payment
// mode. Line items carry the price frozen at add-time, not the current
// catalog price. Fulfilment after payment is out of scope here.
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	siteID64, err := strconv.ParseUint(c.Param("siteId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	var site sites.Site
	if err := database.DB.First(&site, "id = ?", uint(siteID64)).Error; err != nil || !site.IsPublished() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	customerID := c.GetUint("customer_id")
	if customerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Customer not identified"})
		return
	}

	cart, err := carts.Find(database.DB, site.ID, carts.Authenticated(customerID))
	if err != nil || len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	names := productNames(cart.Items)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cart.Items))
	for _, item := range cart.Items {
		name := names[item.ProductID]
		if name == "" {
			name = fmt.Sprintf("Item #%d", item.ProductID)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(item.UnitPrice),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
		})
	}

	storeURL := config.APP_URL + sites.BasePath(site, sites.MountSlug)

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(storeURL + "/cart?paid=1"),
		CancelURL:  stripe.String(storeURL + "/cart?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,

		ClientReferenceID: stripe.String(fmt.Sprint(customerID)),

		Metadata: map[string]string{
			"site_id":     fmt.Sprint(site.ID),
			"customer_id": fmt.Sprint(customerID),
			"cart_id":     fmt.Sprint(cart.ID),
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func productNames(items []carts.CartItem) map[uint]string {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	var rows []products.Product
	database.DB.Where("id IN ?", ids).Find(&rows)

	names := make(map[uint]string, len(rows))
	for _, p := range rows {
		names[p.ID] = p.Name
	}
	return names
}
