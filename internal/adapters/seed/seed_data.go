package seed

// defaultSeeds is the brokerage's demo portfolio. It is only ever served when
// neither the remote store nor the local cache has data.
var defaultSeeds = []Listing{
	{
		ID:          "1",
		Title:       "Charmante Altbauwohnung im Herzen von Ladenburg",
		Category:    "wohnung",
		PriceType:   priceTypeKauf,
		Price:       385000,
		Area:        98.5,
		Rooms:       3,
		Address:     "Hauptstraße 12",
		City:        "Ladenburg",
		Zip:         "68526",
		Description: "Stilvolle 3-Zimmer-Wohnung mit hohen Decken, Stuck und Blick auf die Altstadt.",
		Features:    []string{"Balkon", "Einbauküche", "Keller", "Denkmalschutz-AfA"},
		Images:      []string{"/images/listings/altbau-ladenburg-1.jpg", "/images/listings/altbau-ladenburg-2.jpg"},
		IsFeatured:  true,
		Published:   true,
		Latitude:    49.4731,
		Longitude:   8.6089,
	},
	{
		ID:          "2",
		Title:       "Modernes Einfamilienhaus mit Garten in Edingen-Neckarhausen",
		Category:    "haus",
		PriceType:   priceTypeKauf,
		Price:       675000,
		Area:        142.0,
		Rooms:       5,
		Address:     "Neckarstraße 48",
		City:        "Edingen-Neckarhausen",
		Zip:         "68535",
		Description: "Familienfreundliches Haus aus 2018 mit Südgarten, Doppelgarage und Wärmepumpe.",
		Features:    []string{"Garten", "Doppelgarage", "Fußbodenheizung", "KfW 55"},
		Images:      []string{"/images/listings/efh-edingen-1.jpg"},
		IsFeatured:  true,
		Published:   true,
		Latitude:    49.4522,
		Longitude:   8.6033,
	},
	{
		ID:          "3",
		Title:       "Helle 2-Zimmer-Wohnung mit Balkon in Heddesheim",
		Category:    "wohnung",
		PriceType:   priceTypeMiete,
		Price:       890,
		PriceSuffix: "/Monat",
		Area:        64.0,
		Rooms:       2,
		Address:     "Beindstraße 7",
		City:        "Heddesheim",
		Zip:         "68542",
		Description: "Gepflegte Mietwohnung in ruhiger Lage, ideal für Pendler nach Mannheim.",
		Features:    []string{"Balkon", "Stellplatz", "Tageslichtbad"},
		Images:      []string{"/images/listings/whg-heddesheim-1.jpg"},
		Published:   true,
		Latitude:    49.5043,
		Longitude:   8.6036,
	},
	{
		ID:          "4",
		Title:       "Baugrundstück in zweiter Reihe in Ilvesheim",
		Category:    "grundstueck",
		PriceType:   priceTypeKauf,
		Price:       298000,
		Area:        412.0,
		Rooms:       0,
		Address:     "Schlossstraße 23",
		City:        "Ilvesheim",
		Zip:         "68549",
		Description: "Erschlossenes Grundstück für ein Einfamilienhaus, Bebauungsplan vorhanden.",
		Features:    []string{"Voll erschlossen", "Südausrichtung"},
		Published:   false,
	},
	{
		ID:          "5",
		Title:       "Ladenfläche am Marktplatz Ladenburg",
		Category:    "gewerbe",
		PriceType:   priceTypeMiete,
		Price:       1650,
		PriceSuffix: "/Monat",
		Area:        85.0,
		Rooms:       2,
		Address:     "Marktplatz 3",
		City:        "Ladenburg",
		Zip:         "68526",
		Description: "Gut frequentierte Gewerbefläche mit großer Schaufensterfront in Bestlage.",
		Features:    []string{"Schaufensterfront", "Lagerraum", "Klimaanlage"},
		Images:      []string{"/images/listings/laden-ladenburg-1.jpg"},
		Published:   true,
		Latitude:    49.4719,
		Longitude:   8.6107,
	},
}
