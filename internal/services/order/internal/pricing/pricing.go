package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"pizza-order-system/internal/models"
)

// Pizzas are priced by area: pi * r^2 / areaDivisor, with the radius
// looked up from the size. Unknown sizes resolve to a zero radius.
var sizeRadius = map[string]int64{
	"small":  5,
	"medium": 6,
	"large":  7,
	"xlarge": 8,
}

var sizeCalories = map[string]int{
	"small":  1200,
	"medium": 1600,
	"large":  2200,
	"xlarge": 2600,
}

const (
	areaDivisor      = 11
	pricePerTopping  = 2
	freeToppings     = 1
	extraCheesePrice = 2

	caloriesPerMeat      = 200
	caloriesPerVegetable = 25
)

var pi = decimal.NewFromFloat(math.Pi)

// Price computes the price of a customization, rounded to two decimal
// places. One topping is always free, even when none are selected, so a
// zero-topping pizza carries a negative topping charge.
func Price(pizza *models.PizzaCustomization) decimal.Decimal {
	radius := decimal.NewFromInt(sizeRadius[pizza.Size])
	base := pi.Mul(radius).Mul(radius).Div(decimal.NewFromInt(areaDivisor))

	toppings := decimal.NewFromInt(int64(pricePerTopping * (pizza.Toppings.Count() - freeToppings)))
	if pizza.Cheese == "extra" {
		toppings = toppings.Add(decimal.NewFromInt(extraCheesePrice))
	}

	return base.Add(toppings).Round(2)
}

// Calories computes the calorie count of a customization from its size and
// topping counts. Unknown sizes resolve to a zero base.
func Calories(pizza *models.PizzaCustomization) int {
	return sizeCalories[pizza.Size] +
		caloriesPerMeat*len(pizza.Toppings.Meats) +
		caloriesPerVegetable*len(pizza.Toppings.Vegetables)
}
