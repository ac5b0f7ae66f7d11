package constants

// CacheKeyListings is the key of the local listing cache blob inside the
// device key/value store. The value is a JSON array of listing records.
const CacheKeyListings = "ed_immobilien_listings"
