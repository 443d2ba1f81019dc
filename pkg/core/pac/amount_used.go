package pac

import (
	"pacpro/pkg/core/calc"
	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// mealShare is the food-cost share of promotions and manager meals.
var mealShare = decimal.RequireFromString("0.30")

// OtherFoodComponents is the offset subtracted from food consumption:
// 30% of promotions and manager meals plus raw and complete waste at their
// percent of product net sales.
func OtherFoodComponents(in models.InputRecord) decimal.Decimal {
	s := in.Sales.ProductNetSales
	return calc.Sum(
		mealShare.Mul(in.Sales.Promotions),
		mealShare.Mul(in.Sales.ManagerMeals),
		calc.ApplyPercent(s, in.Waste.RawWastePercent),
		calc.ApplyPercent(s, in.Waste.CompleteWastePercent),
	)
}

// ResolveAmountUsed derives consumption per category as
// beginning inventory + purchases - ending inventory.
func ResolveAmountUsed(in models.InputRecord) models.AmountUsed {
	begin, end, buy := in.BeginningInventory, in.EndingInventory, in.Purchases

	return models.AmountUsed{
		Food:       begin.Food.Add(buy.Food).Sub(end.Food).Sub(OtherFoodComponents(in)),
		Paper:      begin.Paper.Add(buy.Paper).Sub(end.Paper),
		Condiment:  begin.Condiment.Add(buy.Condiment).Sub(end.Condiment),
		NonProduct: begin.NonProduct.Add(buy.NonProduct).Sub(end.NonProduct),
		OpSupplies: begin.OpSupplies.Add(buy.OperatingSupply).Sub(end.OpSupplies),
	}
}
