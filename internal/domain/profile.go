package domain

// TastingEntry is a single row from a user's exported tasting log
// (e.g. a Vivino CSV export). WineName is free text and rarely matches
// the catalog spelling exactly; ArticleNumber is present only when the
// user bothered to note it.
type TastingEntry struct {
	WineName      string  `json:"wineName"`
	Rating        float64 `json:"rating"`
	ArticleNumber string  `json:"articleNumber,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// UserProfile is a derived, read-only taste profile built once from a
// tasting log. It is never mutated after construction.
type UserProfile struct {
	UserID string `json:"userId"`

	// Top 5 by frequency among highly rated entries.
	FavoriteCountries []string `json:"favoriteCountries"`
	FavoriteRegions   []string `json:"favoriteRegions"`

	// Observed price range among highly rated entries, with fallback
	// defaults when the log is too sparse.
	PriceMin float64 `json:"priceMin"`
	PriceMax float64 `json:"priceMax"`

	// Fixed baseline body preference on the 1-12 taste clock scale.
	BodyPreference int `json:"bodyPreference"`

	PreferredStyles []string `json:"preferredStyles"`
}
