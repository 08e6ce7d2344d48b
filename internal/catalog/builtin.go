package catalog

import (
	"context"

	"github.com/vbonduro/drinklog/internal/domain"
)

const (
	SourceBuiltin = "builtin"
	SourceCache   = "cache"
)

func alcohol(name, image string, ml, abv float64) domain.CatalogDrink {
	return domain.CatalogDrink{Name: name, ImageName: image, VolumeML: ml, Category: domain.CategoryAlcohol, AlcoholPercentage: &abv}
}

func caffeine(name, image string, ml, mg float64) domain.CatalogDrink {
	return domain.CatalogDrink{Name: name, ImageName: image, VolumeML: ml, Category: domain.CategoryCaffeine, CaffeineMg: &mg}
}

// Defaults returns a fresh copy of the drinks shipped with the binary.
func Defaults() []domain.CatalogDrink {
	return []domain.CatalogDrink{
		alcohol("Beer 10º", "gambrinus", 500, 4.1),
		alcohol("Beer 11º", "kozel", 500, 4.6),
		alcohol("Beer 12º", "radegast", 500, 5.1),
		alcohol("Wine Glass", "wine_glass", 200, 14),
		alcohol("Wine Bottle", "wine_bottle", 750, 14),
		alcohol("Vodka", "vodka", 40, 40),
		alcohol("Champagne", "champagne", 150, 11),
		alcohol("Cider", "cider", 400, 4.5),
		alcohol("Absinth", "absinth", 40, 70),
		alcohol("Gin Tonic", "gin_tonic", 250, 11),
		alcohol("Moscow Mule", "moscow_mule", 200, 10),
		alcohol("Cuba Libre", "cuba_libre", 200, 11),
		alcohol("Mojito", "mojito", 250, 9),
		alcohol("Whiskey", "whiskey", 40, 45),
		alcohol("Rum", "rum", 40, 40),
		alcohol("Green", "green", 40, 20),
		alcohol("Jägermeister", "jager", 40, 35),
		alcohol("B Lemond", "lemond", 40, 20),

		caffeine("Red Bull", "red_bull", 250, 80),
		caffeine("Monster", "monster", 500, 160),
		caffeine("Monster Ultra", "monster_ultra", 500, 150),
		caffeine("Crazy Wolf", "crazy_wolf", 500, 150),
		caffeine("Tiger", "tiger", 250, 80),
		caffeine("Rockstar", "rockstar", 500, 160),
		caffeine("Big Shock", "big_shock", 500, 160),
		caffeine("Espresso", "espresso", 30, 70),
		caffeine("Double Espresso", "double_espresso", 60, 140),
		caffeine("Cappuccino", "cappuccino", 170, 70),
		caffeine("Caffe Latte", "latte", 220, 70),
		caffeine("Flat White", "flat_white", 170, 100),
		caffeine("Green Tea", "greeen", 300, 40),
		caffeine("Black Tea", "black", 300, 70),
		caffeine("Americano", "kafe", 200, 71),
		caffeine("Coca-Cola", "coca_cola", 500, 48),
		caffeine("Pepsi", "pepsi", 500, 54),
		caffeine("Kofola", "kofola", 500, 75),
	}
}

// Builtin serves Defaults. It never fails.
type Builtin struct{}

func (Builtin) Name() string { return SourceBuiltin }

func (Builtin) Drinks(context.Context) ([]domain.CatalogDrink, error) {
	return Defaults(), nil
}
