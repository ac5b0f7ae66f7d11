package constants

// Exchange for listing change notifications.
const (
	ListingsExchange     = "listings_exchange"
	ListingsExchangeType = "direct"
)

// Routing keys.
const (
	RoutingKeyListingChanged = "listings.changed"
)
