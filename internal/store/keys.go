package store

// Fixed keys under which the blobs are persisted.
const (
	KeyEntries       = "SavedDrinks"
	KeyProfile       = "UserProfile"
	KeyCatalog       = "CachedPopularDrinks"
	KeyCatalogUpdate = "LastDrinksUpdate"
)
